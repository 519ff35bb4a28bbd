package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonalChatRoomIDOrderIndependent(t *testing.T) {
	assert.Equal(t, "5_9", PersonalChatRoomID(5, 9))
	assert.Equal(t, "5_9", PersonalChatRoomID(9, 5))
}

func TestGroupChatRoomID(t *testing.T) {
	assert.Equal(t, "group_7", GroupChatRoomID(7))
}

func TestChatroomFromTopic(t *testing.T) {
	id, ok := ChatroomFromTopic(TopicChat("5_9"))
	assert.True(t, ok)
	assert.Equal(t, "5_9", id)

	_, ok = ChatroomFromTopic(TopicMessageStatus)
	assert.False(t, ok)
}
