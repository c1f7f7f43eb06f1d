package models

import "time"

// Review is customer feedback submitted from the public site. It stays hidden
// until an admin approves it.
type Review struct {
	ID        string    `bson:"_id" json:"id"`
	Author    string    `bson:"author" json:"author"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	Approved  bool      `bson:"approved" json:"approved"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SubmitReviewInput carries the fields accepted from the public review form.
type SubmitReviewInput struct {
	Author  string `json:"author"`
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}
