package market

import "github.com/yourusername/fairline/internal/models"

// DeterminePairingStatus classifies a group's quote coverage. Paired means
// some book prices every side; oneSided means exactly one side has quotes;
// unpaired means either nothing is quoted or multiple sides are quoted but no
// single book covers them all. EV computation branches on all three states,
// so this is a three-way status rather than a boolean.
func DeterminePairingStatus(selections []models.Selection) models.PairingStatus {
	quoted := 0
	for i := range selections {
		if selections[i].HasPrices() {
			quoted++
		}
	}

	if quoted == 0 {
		return models.PairingStatusUnpaired
	}
	if quoted < 2 {
		return models.PairingStatusOneSided
	}

	group := models.BetGroup{Selections: selections}
	if len(group.CommonBooks()) > 0 {
		return models.PairingStatusPaired
	}
	return models.PairingStatusUnpaired
}
