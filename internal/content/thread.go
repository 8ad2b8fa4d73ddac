package content

import "github.com/forumhq/forumctl/internal/model"

// InsertReply places reply under the comment with parentID, searching the
// tree at any depth. Sibling comments are left untouched; the tree is
// append-only from the client's view. Returns false when no comment with
// parentID exists, in which case the tree is unchanged.
func InsertReply(comments []*model.Comment, parentID int64, reply *model.Comment) bool {
	for _, comment := range comments {
		if comment.ID == parentID {
			comment.Replies = append(comment.Replies, reply)
			return true
		}
		if InsertReply(comment.Replies, parentID, reply) {
			return true
		}
	}
	return false
}

// FindComment returns the comment with id anywhere in the tree, or nil.
func FindComment(comments []*model.Comment, id int64) *model.Comment {
	for _, comment := range comments {
		if comment.ID == id {
			return comment
		}
		if found := FindComment(comment.Replies, id); found != nil {
			return found
		}
	}
	return nil
}

// CountComments returns the total number of comments in the tree,
// replies included.
func CountComments(comments []*model.Comment) int {
	total := 0
	for _, comment := range comments {
		total += 1 + CountComments(comment.Replies)
	}
	return total
}
