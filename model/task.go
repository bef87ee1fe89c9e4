package model

import (
	"time"
)

// Task is a document of the "tarefas" collection. Field names stay compatible
// with the documents the web client has always written.
type Task struct {
	ID      string    `firestore:"-"`
	Text    string    `firestore:"tarefa"`
	Public  bool      `firestore:"public"`
	Owner   string    `firestore:"user"` // owner email
	Created time.Time `firestore:"created"`
}
