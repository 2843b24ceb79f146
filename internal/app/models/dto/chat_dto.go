package dto

// StartConversationRequest opens (or rejoins) the private thread
// between two users. Pair order does not matter.
type StartConversationRequest struct {
	User1ID string `json:"user1_id" binding:"required"`
	User2ID string `json:"user2_id" binding:"required"`
}

// Pagination is the stub paging block attached to list responses.
type Pagination struct {
	HasMore bool `json:"has_more"`
}
