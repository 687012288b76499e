package territory

import "strings"

// GroupByRetail folds a region's detail rows into one summary per unique
// (retailName, retailAddress) pair, preserving first-appearance order of
// both the retails and the values inside each group.
//
// Rows with an empty retail name or empty retail address are skipped
// entirely.  Empty product or competitor names never appear in the grouped
// output.
func GroupByRetail(details []DetailRow) []GroupedRetailDetail {
	type key struct {
		name    string
		address string
	}
	index := make(map[key]int)
	grouped := make([]GroupedRetailDetail, 0)

	for _, d := range details {
		if d.RetailName == "" || d.RetailAddress == "" {
			continue
		}
		k := key{name: d.RetailName, address: d.RetailAddress}
		i, ok := index[k]
		if !ok {
			i = len(grouped)
			index[k] = i
			grouped = append(grouped, GroupedRetailDetail{
				RetailName:    d.RetailName,
				RetailAddress: d.RetailAddress,
				Products:      []string{},
				Competitors:   []string{},
			})
		}
		if d.ProductName != "" && !contains(grouped[i].Products, d.ProductName) {
			grouped[i].Products = append(grouped[i].Products, d.ProductName)
		}
		if d.CompetitorName != "" && !contains(grouped[i].Competitors, d.CompetitorName) {
			grouped[i].Competitors = append(grouped[i].Competitors, d.CompetitorName)
		}
	}
	return grouped
}

// UniqueField extracts the distinct values of one detail field in
// first-appearance order.  Empty and whitespace-only values are dropped.
func UniqueField(details []DetailRow, field func(DetailRow) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, d := range details {
		v := field(d)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// UniqueProducts lists the distinct product names across the detail rows.
func UniqueProducts(details []DetailRow) []string {
	return UniqueField(details, func(d DetailRow) string { return d.ProductName })
}

// UniqueCompetitors lists the distinct competitor names across the detail rows.
func UniqueCompetitors(details []DetailRow) []string {
	return UniqueField(details, func(d DetailRow) string { return d.CompetitorName })
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
