package models

// The write results mirror the shape document stores report back, so clients
// see the same body whichever backend is configured.

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type CheckoutResult struct {
	Result         InsertResult `json:"result"`
	DeleteCartInfo DeleteResult `json:"deleteCartInfo"`
}
