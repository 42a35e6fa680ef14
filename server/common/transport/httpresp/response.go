package httpresp

const (
	MsgNoMessagesForUser = "No messages found for this user"
	MsgNoSimilarUsers    = "No similar users found"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	UserID      string `json:"user_id"`
	UserMessage string `json:"user_message"`
	LLMResponse string `json:"llm_response"`
}

type MostSimilarResponse struct {
	MostSimilarUser string `json:"most_similar_user"`
}

type UserMessagesResponse struct {
	UserID   string   `json:"user_id"`
	Messages []string `json:"messages"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

func NewChatResponse(userID, userMessage, llmResponse string) ChatResponse {
	return ChatResponse{UserID: userID, UserMessage: userMessage, LLMResponse: llmResponse}
}

func NewMostSimilarResponse(userID string) MostSimilarResponse {
	return MostSimilarResponse{MostSimilarUser: userID}
}

func NewUserMessagesResponse(userID string, messages []string) UserMessagesResponse {
	return UserMessagesResponse{UserID: userID, Messages: messages}
}
