package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"chat-app-server/models"
	"chat-app-server/repositories"

	"gorm.io/gorm"
)

// ChatRoomService resolves the canonical chatroom for a pair of users or a
// group, creating it lazily on first use. Rooms are never deleted; message
// history has to stay addressable.
type ChatRoomService struct {
	ChatRoomRepo repositories.ChatRoomRepository
	UserRepo     repositories.UserRepository
	GroupRepo    repositories.GroupRepository
}

func NewChatRoomService(chatRoomRepo repositories.ChatRoomRepository, userRepo repositories.UserRepository, groupRepo repositories.GroupRepository) *ChatRoomService {
	return &ChatRoomService{
		ChatRoomRepo: chatRoomRepo,
		UserRepo:     userRepo,
		GroupRepo:    groupRepo,
	}
}

// ResolvePersonal returns the one chatroom for the unordered user pair,
// creating it when absent. Two concurrent resolvers converge on the same
// candidate id; the insert is create-if-absent, and the loser re-reads the
// winner's row instead of erroring.
func (s *ChatRoomService) ResolvePersonal(userA, userB uint) (*models.ChatRoom, error) {
	if userA == 0 || userB == 0 {
		return nil, fmt.Errorf("%w: both participant ids are required", ErrInvalidArgument)
	}
	if userA == userB {
		return nil, fmt.Errorf("%w: a personal chat needs two distinct participants", ErrInvalidArgument)
	}

	first, err := s.UserRepo.FindByID(userA)
	if err != nil {
		return nil, asNotFound(err, "user %d", userA)
	}
	second, err := s.UserRepo.FindByID(userB)
	if err != nil {
		return nil, asNotFound(err, "user %d", userB)
	}

	existing, err := s.ChatRoomRepo.FindPersonalByParticipants(userA, userB)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	candidate := &models.ChatRoom{
		ID:           models.PersonalChatRoomID(userA, userB),
		Kind:         models.ChatRoomPersonal,
		Participants: []models.User{*first, *second},
		LastActivity: time.Now(),
	}

	created, err := s.ChatRoomRepo.CreateIfAbsent(candidate)
	if err != nil {
		return nil, err
	}
	if !created {
		// Lost the race; the winner's row is authoritative.
		return s.ChatRoomRepo.FindByID(candidate.ID)
	}

	log.Printf("[chatroom] created personal chatroom %s for users %d and %d", candidate.ID, userA, userB)
	return candidate, nil
}

// ResolveGroup returns the one chatroom bound to the group, creating it on
// first use with the group's current membership as participants.
func (s *ChatRoomService) ResolveGroup(groupID uint) (*models.ChatRoom, error) {
	if groupID == 0 {
		return nil, fmt.Errorf("%w: group id is required", ErrInvalidArgument)
	}

	group, err := s.GroupRepo.FindByID(groupID)
	if err != nil {
		return nil, asNotFound(err, "group %d", groupID)
	}

	existing, err := s.ChatRoomRepo.FindByGroup(groupID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	candidate := &models.ChatRoom{
		ID:           models.GroupChatRoomID(groupID),
		Kind:         models.ChatRoomGroup,
		GroupID:      &group.ID,
		Participants: group.Members,
		LastActivity: time.Now(),
	}

	created, err := s.ChatRoomRepo.CreateIfAbsent(candidate)
	if err != nil {
		return nil, err
	}
	if !created {
		return s.ChatRoomRepo.FindByID(candidate.ID)
	}

	log.Printf("[chatroom] created group chatroom %s for group %d", candidate.ID, groupID)
	return candidate, nil
}

func (s *ChatRoomService) GetByID(chatroomID string) (*models.ChatRoom, error) {
	room, err := s.ChatRoomRepo.FindByID(chatroomID)
	if err != nil {
		return nil, asNotFound(err, "chatroom %s", chatroomID)
	}
	return room, nil
}

// RoomsForUser lists every chatroom the user participates in, most recently
// active first.
func (s *ChatRoomService) RoomsForUser(userID uint) ([]models.ChatRoom, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return nil, asNotFound(err, "user %d", userID)
	}
	return s.ChatRoomRepo.FindByParticipant(userID)
}

// AddParticipant keeps a group chatroom's participant set in sync when a user
// joins the owning group.
func (s *ChatRoomService) AddParticipant(chatroomID string, userID uint) error {
	room, err := s.GetByID(chatroomID)
	if err != nil {
		return err
	}
	if room.Kind != models.ChatRoomGroup {
		return fmt.Errorf("%w: participants of a personal chatroom are fixed", ErrInvalidArgument)
	}
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return asNotFound(err, "user %d", userID)
	}
	return s.ChatRoomRepo.AddParticipant(chatroomID, user)
}

// RemoveParticipant is the inverse of AddParticipant.
func (s *ChatRoomService) RemoveParticipant(chatroomID string, userID uint) error {
	room, err := s.GetByID(chatroomID)
	if err != nil {
		return err
	}
	if room.Kind != models.ChatRoomGroup {
		return fmt.Errorf("%w: participants of a personal chatroom are fixed", ErrInvalidArgument)
	}
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return asNotFound(err, "user %d", userID)
	}
	return s.ChatRoomRepo.RemoveParticipant(chatroomID, user)
}

// TouchActivity bumps lastActivity. A stale value is an ordering hint, not a
// correctness violation, so failures are logged and swallowed.
func (s *ChatRoomService) TouchActivity(chatroomID string) {
	if err := s.ChatRoomRepo.TouchActivity(chatroomID, time.Now()); err != nil {
		log.Printf("[chatroom] failed to bump activity for %s: %v", chatroomID, err)
	}
}
