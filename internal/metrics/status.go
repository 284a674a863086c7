package metrics

import "sort"

// StatusBucket counts failed calls to one resource with one status code.
type StatusBucket struct {
	Content string `json:"content"`
	Code    string `json:"code"`
	Count   int    `json:"count"`
}

// FlattenStatusBuckets converts a nested content->status map into a sorted slice of StatusBucket rows.
// Rows are sorted by descending count, then by content/code for stability.
func FlattenStatusBuckets(buckets map[string]map[string]int) []StatusBucket {
	if len(buckets) == 0 {
		return nil
	}
	rows := make([]StatusBucket, 0)
	for content, codes := range buckets {
		for code, count := range codes {
			rows = append(rows, StatusBucket{Content: content, Code: code, Count: count})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		if rows[i].Content != rows[j].Content {
			return rows[i].Content < rows[j].Content
		}
		return rows[i].Code < rows[j].Code
	})
	return rows
}
