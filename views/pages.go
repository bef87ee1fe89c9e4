package views

import "tarefas/model"

// Header is the top bar shared by every page.
type Header struct {
	Identity *model.Identity
}

type HomePage struct {
	Header
	TaskCount    int64
	CommentCount int64
	AuthMode     string
	Firebase     FirebaseWeb

	// CountsUnavailable hides the counters when the store could not be read.
	CountsUnavailable bool
}

// FirebaseWeb is the public web SDK configuration used by the sign-in button.
type FirebaseWeb struct {
	APIKey     string
	AuthDomain string
	ProjectID  string
}

type DashboardPage struct {
	Header
	TaskList
}

type TaskList struct {
	Tasks []model.Task
}

type TaskPage struct {
	Header
	Task     model.Task
	Comments []CommentItem
}

// CommentItem is one comment as rendered for a given viewer.
type CommentItem struct {
	model.Comment
	CanDelete bool
}

// NewCommentItems marks the comments the viewer authored as deletable.
func NewCommentItems(comments []model.Comment, viewer *model.Identity) []CommentItem {
	items := make([]CommentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, NewCommentItem(c, viewer))
	}
	return items
}

func NewCommentItem(c model.Comment, viewer *model.Identity) CommentItem {
	return CommentItem{
		Comment:   c,
		CanDelete: viewer != nil && viewer.Email != "" && c.Author == viewer.Email,
	}
}
