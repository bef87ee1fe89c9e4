package services

import "strings"

// ShareURL is the public link of a task: <base>/task/<id>.
func ShareURL(baseURL, taskID string) string {
	return strings.TrimRight(baseURL, "/") + "/task/" + taskID
}
