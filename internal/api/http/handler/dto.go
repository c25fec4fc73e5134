package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/model"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	ID        uuid.UUID     `json:"id"`
	Username  string        `json:"username"`
	Biography string        `json:"biography"`
	ImageURL  string        `json:"imageUrl"`
	RoleName  string        `json:"roleName"`
	Tags      []tagResponse `json:"tags,omitempty"`
}

type trackResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ImageURL    string        `json:"imageUrl"`
	AudioURL    string        `json:"audioUrl"`
	Author      userResponse  `json:"author"`
	Tags        []tagResponse `json:"tags"`
	LikesCount  int64         `json:"likesCount"`
	IsLiked     bool          `json:"isLiked"`
}

type messageResponse struct {
	ID        uuid.UUID    `json:"id"`
	Sender    userResponse `json:"sender"`
	Recipient userResponse `json:"recipient"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	IsReaded  bool         `json:"isReaded"`
}

func newTagResponses(tags []model.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func newUserResponse(u model.UserView) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Biography: u.Biography,
		ImageURL:  u.ImageURL,
		RoleName:  string(u.Role),
	}
	if u.Tags != nil {
		resp.Tags = newTagResponses(u.Tags)
	}
	return resp
}

func newUserResponses(users []model.UserView) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}

func newTrackResponse(t model.TrackView) trackResponse {
	return trackResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		ImageURL:    t.ImageURL,
		AudioURL:    t.AudioURL,
		Author:      newUserResponse(t.Author),
		Tags:        newTagResponses(t.Tags),
		LikesCount:  t.LikesCount,
		IsLiked:     t.IsLiked,
	}
}

func newTrackResponses(tracks []model.TrackView) []trackResponse {
	out := make([]trackResponse, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, newTrackResponse(t))
	}
	return out
}

func newMessageResponse(m model.MessageView) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Sender:    newUserResponse(m.Sender),
		Recipient: newUserResponse(m.Recipient),
		Content:   m.Content,
		Timestamp: m.SentAt,
		IsReaded:  m.IsRead,
	}
}

func newMessageResponses(msgs []model.MessageView) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, newMessageResponse(m))
	}
	return out
}
