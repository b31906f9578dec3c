package apimodels

type AnalyzeRequest struct {
	// StoreID is the store domain, e.g. "example.myshopify.com".
	StoreID string `json:"store_id"`

	// Question is the natural language analytics question.
	Question string `json:"question"`

	// AccessToken is the Admin API credential. When absent the service falls
	// back to synthetic fixture data.
	AccessToken string `json:"access_token,omitempty"`

	// UseMock forces synthetic fixture data even when a token is supplied.
	UseMock bool `json:"use_mock,omitempty"`
}
