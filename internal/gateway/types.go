package gateway

// Wire types for the assistant gateway contract. Requests and responses are
// JSON; fields the gateway sends but the console never consumes (such as
// formatted_text) are decoded and ignored.

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// Meeting is an ephemeral snapshot owned by the gateway; the console never
// tracks identity between refreshes.
type Meeting struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	// Duration is in minutes.
	Duration int `json:"duration"`
}

type meetingsResponse struct {
	Meetings      []Meeting `json:"meetings"`
	FormattedText string    `json:"formatted_text"`
}

type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
