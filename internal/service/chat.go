package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"anonu/internal/apperrors"
	"anonu/internal/ids"
	"anonu/internal/models"
	"anonu/internal/repository"
)

type ChatService struct {
	chats *repository.Chats
	log   zerolog.Logger
}

func NewChatService(chats *repository.Chats, log zerolog.Logger) *ChatService {
	return &ChatService{chats: chats, log: log}
}

// Provision builds a new two-party channel without persisting it. The
// handshake engine calls this so the chat can join the acceptance's atomic
// effect set.
func (s *ChatService) Provision(studentID, psychologistID string) models.Chat {
	return models.Chat{
		ID:             ids.New("chat"),
		StudentID:      studentID,
		PsychologistID: psychologistID,
		Accepted:       true,
		Messages:       []models.Message{},
	}
}

// CreateChat provisions and persists a channel in one step.
func (s *ChatService) CreateChat(ctx context.Context, studentID, psychologistID string) (models.Chat, error) {
	chats, err := s.chats.Load(ctx)
	if err != nil {
		return models.Chat{}, err
	}

	chat := s.Provision(studentID, psychologistID)
	chats = append(chats, chat)
	if err := s.chats.Save(ctx, chats); err != nil {
		return models.Chat{}, err
	}

	s.log.Debug().Str("chat_id", chat.ID).Msg("chat created")
	return chat, nil
}

// PostMessage appends to the chat's log. The sender role comes from comparing
// the sender id to the chat's parties; anyone else is rejected.
func (s *ChatService) PostMessage(ctx context.Context, chatID, senderID, text string) (models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, apperrors.ErrEmptyText
	}

	chats, err := s.chats.Load(ctx)
	if err != nil {
		return models.Message{}, err
	}
	i := repository.ChatIndexByID(chats, chatID)
	if i < 0 {
		return models.Message{}, apperrors.ErrChatNotFound
	}

	sender, isParty := chats[i].Participant(senderID)
	if !isParty {
		return models.Message{}, apperrors.Forbidden("sender is not a participant of this chat")
	}

	message := models.Message{
		ID:     ids.New("m"),
		Sender: sender,
		Text:   text,
		At:     time.Now().UTC(),
	}

	chats[i].Messages = append(chats[i].Messages, message)
	if err := s.chats.Save(ctx, chats); err != nil {
		return models.Message{}, err
	}
	return message, nil
}

func (s *ChatService) GetChat(ctx context.Context, chatID string) (models.Chat, error) {
	chats, err := s.chats.Load(ctx)
	if err != nil {
		return models.Chat{}, err
	}
	i := repository.ChatIndexByID(chats, chatID)
	if i < 0 {
		return models.Chat{}, apperrors.ErrChatNotFound
	}
	return chats[i], nil
}

// ChatsFor lists every chat the account takes part in, creation order.
func (s *ChatService) ChatsFor(ctx context.Context, accountID string) ([]models.Chat, error) {
	chats, err := s.chats.Load(ctx)
	if err != nil {
		return nil, err
	}

	mine := []models.Chat{}
	for _, c := range chats {
		if _, isParty := c.Participant(accountID); isParty {
			mine = append(mine, c)
		}
	}
	return mine, nil
}
