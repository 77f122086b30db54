package service

import (
	"context"
	"errors"
	"fmt"

	dom "Socialmedia/internal/domain"
	"Socialmedia/internal/repo"
)

type MessageService struct {
	repo repo.MessageRepo
}

func NewMessageService(r repo.MessageRepo) *MessageService {
	return &MessageService{repo: r}
}

// PostMessage stores a new message. The author is not checked here; callers
// confirm it with AccountService.Exists first.
func (s *MessageService) PostMessage(ctx context.Context, candidate dom.Message) (dom.Message, error) {
	if err := dom.ValidateMessageText(candidate.Text).Err(); err != nil {
		return dom.Message{}, err
	}
	m, err := s.repo.Create(ctx, dom.Message{
		AuthorID: candidate.AuthorID,
		Text:     candidate.Text,
		PostedAt: candidate.PostedAt,
	})
	if err != nil {
		return dom.Message{}, fmt.Errorf("create message: %w", err)
	}
	return m, nil
}

func (s *MessageService) GetAllMessages(ctx context.Context) ([]dom.Message, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return nonNil(list), nil
}

// GetMessageByID returns ok=false when no message has that id.
func (s *MessageService) GetMessageByID(ctx context.Context, id int64) (dom.Message, bool, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return dom.Message{}, false, nil
		}
		return dom.Message{}, false, fmt.Errorf("get message: %w", err)
	}
	return m, true, nil
}

// DeleteMessage reports whether a row was removed.
func (s *MessageService) DeleteMessage(ctx context.Context, id int64) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete message: %w", err)
	}
	return removed, nil
}

// UpdateMessageText replaces only the text of message id.
func (s *MessageService) UpdateMessageText(ctx context.Context, id int64, text string) (dom.Message, error) {
	if err := dom.ValidateMessageText(text).Err(); err != nil {
		return dom.Message{}, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return dom.Message{}, dom.ErrNotFound
		}
		return dom.Message{}, fmt.Errorf("get message: %w", err)
	}
	existing.Text = text
	m, err := s.repo.Update(ctx, existing)
	if err != nil {
		// deleted between the lookup and the update
		if errors.Is(err, repo.ErrNoRows) {
			return dom.Message{}, dom.ErrNotFound
		}
		return dom.Message{}, fmt.Errorf("update message: %w", err)
	}
	return m, nil
}

func (s *MessageService) GetMessagesByUserID(ctx context.Context, authorID int64) ([]dom.Message, error) {
	list, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list messages by author: %w", err)
	}
	return nonNil(list), nil
}

func nonNil(list []dom.Message) []dom.Message {
	if list == nil {
		return []dom.Message{}
	}
	return list
}
