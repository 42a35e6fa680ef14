package api

import (
	"match_server/server/common/transport/httpresp"
)

const (
	MsgNoMessagesForUser = httpresp.MsgNoMessagesForUser
	MsgNoSimilarUsers    = httpresp.MsgNoSimilarUsers
)

type ErrorResponse = httpresp.ErrorResponse
type MessageResponse = httpresp.MessageResponse
type ChatResponse = httpresp.ChatResponse
type MostSimilarResponse = httpresp.MostSimilarResponse
type UserMessagesResponse = httpresp.UserMessagesResponse

func NewErrorResponse(message string) ErrorResponse {
	return httpresp.NewErrorResponse(message)
}

func NewMessageResponse(message string) MessageResponse {
	return httpresp.NewMessageResponse(message)
}

func NewChatResponse(userID, userMessage, llmResponse string) ChatResponse {
	return httpresp.NewChatResponse(userID, userMessage, llmResponse)
}

func NewMostSimilarResponse(userID string) MostSimilarResponse {
	return httpresp.NewMostSimilarResponse(userID)
}

func NewUserMessagesResponse(userID string, messages []string) UserMessagesResponse {
	return httpresp.NewUserMessagesResponse(userID, messages)
}
