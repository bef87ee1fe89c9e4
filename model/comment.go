package model

import "time"

// Comment is a document of the "comments" collection. TaskID is a plain
// reference; nothing removes comments when their task goes away.
type Comment struct {
	ID         string    `firestore:"-"`
	TaskID     string    `firestore:"taskId"`
	Text       string    `firestore:"comment"`
	Author     string    `firestore:"user"` // author email
	AuthorName string    `firestore:"name"`
	Created    time.Time `firestore:"created"`
}
