package dao

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyALF-Z/AI-Agent/models"
)

func TestMessageRoundTrip(t *testing.T) {
	d := NewMessageDAO(testDB(t))

	created, err := d.Create("conv1", "user1", models.RoleUser, "hello there")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	listed, err := d.ListByConversation("conv1", "user1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "user1", listed[0].UserID)
	assert.Equal(t, "conv1", listed[0].ConversationID)
	assert.Equal(t, models.RoleUser, listed[0].Role)
	assert.Equal(t, "hello there", listed[0].Content)
	assert.False(t, listed[0].Deleted)
}

func TestMessagesListedInInsertionOrder(t *testing.T) {
	d := NewMessageDAO(testDB(t))

	for i := 0; i < 10; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		_, err := d.Create("conv1", "user1", role, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	listed, err := d.ListByConversation("conv1", "user1")
	require.NoError(t, err)
	require.Len(t, listed, 10)
	for i, msg := range listed {
		assert.Equal(t, fmt.Sprintf("message %d", i), msg.Content)
	}
}

func TestListExcludesOtherConversationsAndUsers(t *testing.T) {
	d := NewMessageDAO(testDB(t))

	_, err := d.Create("conv1", "user1", models.RoleUser, "mine")
	require.NoError(t, err)
	_, err = d.Create("conv2", "user1", models.RoleUser, "other conversation")
	require.NoError(t, err)
	_, err = d.Create("conv1", "user2", models.RoleUser, "other user")
	require.NoError(t, err)

	listed, err := d.ListByConversation("conv1", "user1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "mine", listed[0].Content)
}

func TestSoftDeleteByConversationIsFlagOnly(t *testing.T) {
	db := testDB(t)
	d := NewMessageDAO(db)

	for i := 0; i < 5; i++ {
		_, err := d.Create("conv1", "user1", models.RoleUser, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	require.NoError(t, d.SoftDeleteByConversation("conv1", "user1"))

	listed, err := d.ListByConversation("conv1", "user1")
	require.NoError(t, err)
	assert.Empty(t, listed)

	var count int64
	require.NoError(t, db.Model(&models.Message{}).Count(&count).Error)
	assert.EqualValues(t, 5, count, "rows survive the cascade soft-delete")
}

func TestEmptyContentMessageIsPersisted(t *testing.T) {
	d := NewMessageDAO(testDB(t))

	_, err := d.Create("conv1", "user1", models.RoleAssistant, "")
	require.NoError(t, err)

	listed, err := d.ListByConversation("conv1", "user1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "", listed[0].Content)
}
