package dto

// AddCartItemRequest body de POST /cart. El email dueño viaja en query
// y se valida contra el claim; acá va solo la clase.
type AddCartItemRequest struct {
	ClassID string `json:"class_id"`
	Status  string `json:"status"`
}
