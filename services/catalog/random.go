package catalog

import "reelview/models"

// RandomMedia picks one title uniformly across the items of all collections.
// pick(n) must return a value in [0, n); math/rand/v2.IntN fits.
func RandomMedia(pick func(int) int, collections ...models.ResultPage) (models.Media, bool) {
	total := 0
	for _, c := range collections {
		total += len(c.Results)
	}
	if total == 0 {
		return models.Media{}, false
	}
	idx := pick(total)
	for _, c := range collections {
		if idx < len(c.Results) {
			return c.Results[idx], true
		}
		idx -= len(c.Results)
	}
	return models.Media{}, false
}
