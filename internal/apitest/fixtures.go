package apitest

import "fmt"

// Article returns a backend-shaped article object.
func Article(id int, title string) map[string]any {
	return map[string]any{
		"id":            id,
		"title":         title,
		"description":   "<p>" + title + " description</p>",
		"url":           fmt.Sprintf("https://news.example.com/a/%d", id),
		"published_at":  "2024-05-01T10:00:00Z",
		"source_name":   "Example Wire",
		"category_name": "Technology",
		"created_at":    "2024-05-01T10:05:00Z",
	}
}

// Articles wraps articles in the listing envelope.
func Articles(items ...map[string]any) map[string]any {
	list := make([]map[string]any, 0, len(items))
	list = append(list, items...)
	return map[string]any{"success": true, "count": len(list), "articles": list}
}

// Topic returns a trending topic object.
func Topic(name string, articles int, score float64) map[string]any {
	return map[string]any{"topic": name, "total_articles": articles, "avg_trend_score": score}
}

// Failure is an application error envelope.
func Failure(msg string) map[string]any {
	return map[string]any{"success": false, "error": msg}
}
