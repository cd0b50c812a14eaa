package models

import "time"

// Reaction represents an emoji reaction attached to exactly one of a post
// or a comment. The CHECK constraint keeps the two target columns mutually
// exclusive at the table level; the repository validates the same rule
// before the insert so callers get a typed error instead of a driver one.
//
// The two composite unique indexes allow at most one reaction of a given
// kind per (user, target) pair. NULL target columns keep the indexes from
// colliding across the two target types.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_reactions_user_post_kind;uniqueIndex:idx_reactions_user_comment_kind"`
	PostID    *uint     `json:"post_id,omitempty" gorm:"index;uniqueIndex:idx_reactions_user_post_kind;check:chk_reactions_one_target,(post_id IS NOT NULL AND comment_id IS NULL) OR (post_id IS NULL AND comment_id IS NOT NULL)"`
	CommentID *uint     `json:"comment_id,omitempty" gorm:"index;uniqueIndex:idx_reactions_user_comment_kind"`
	Kind      string    `json:"kind" gorm:"column:reaction_type;size:20;not null;uniqueIndex:idx_reactions_user_post_kind;uniqueIndex:idx_reactions_user_comment_kind"` // like, love, haha, wow, sad, angry
	Emoji     string    `json:"emoji,omitempty" gorm:"size:10"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionTarget is the tagged target of a reaction: a post or a comment,
// never both. Construct it with PostTarget or CommentTarget.
type ReactionTarget struct {
	PostID    *uint
	CommentID *uint
}

// PostTarget returns a reaction target pointing at a post
func PostTarget(postID uint) ReactionTarget {
	return ReactionTarget{PostID: &postID}
}

// CommentTarget returns a reaction target pointing at a comment
func CommentTarget(commentID uint) ReactionTarget {
	return ReactionTarget{CommentID: &commentID}
}

// Valid reports whether exactly one target reference is set
func (t ReactionTarget) Valid() bool {
	return (t.PostID != nil) != (t.CommentID != nil)
}
