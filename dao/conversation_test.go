package dao

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyALF-Z/AI-Agent/models"
)

func TestEnsureCreatesConversation(t *testing.T) {
	d := NewConversationDAO(testDB(t))

	convo, err := d.Ensure("conv1", "user1", "New conversation")
	require.NoError(t, err)
	assert.Equal(t, "conv1", convo.ConversationID)
	assert.Equal(t, "user1", convo.UserID)
	assert.Equal(t, "New conversation", convo.Name)
	assert.Nil(t, convo.CustomName)
	assert.False(t, convo.Deleted)
}

func TestEnsureIsIdempotent(t *testing.T) {
	db := testDB(t)
	d := NewConversationDAO(db)

	first, err := d.Ensure("conv1", "user1", "New conversation")
	require.NoError(t, err)
	second, err := d.Ensure("conv1", "user1", "Some other name")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "New conversation", second.Name, "second ensure must not rename")

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "ensuring twice must not create two rows")
}

func TestEnsureConcurrentCallersShareOneRow(t *testing.T) {
	db := testDB(t)
	d := NewConversationDAO(db)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Ensure("conv1", "user1", "New conversation")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err, "losing the create race is still success")
	}

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "racing ensures must collapse into one row")
}

func TestActiveConversationUniqueInStore(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.Create(&models.Conversation{
		ConversationID: "dup", UserID: "user1", Name: "first",
	}).Error)
	err := db.Create(&models.Conversation{
		ConversationID: "dup", UserID: "user1", Name: "second",
	}).Error
	require.Error(t, err, "store must reject a second active row for the same id")

	// A soft-deleted row does not block re-creation under the same id.
	require.NoError(t, db.Model(&models.Conversation{}).
		Where("conversation_id = ? AND user_id = ?", "dup", "user1").
		Update("deleted", true).Error)
	require.NoError(t, db.Create(&models.Conversation{
		ConversationID: "dup", UserID: "user1", Name: "again",
	}).Error)
}

func TestEnsureScopedPerUser(t *testing.T) {
	d := NewConversationDAO(testDB(t))

	a, err := d.Ensure("conv1", "user1", "New conversation")
	require.NoError(t, err)
	b, err := d.Ensure("conv1", "user2", "New conversation")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID, "same id for different users is a different conversation")
}

func TestRenameSetsCustomNameAndRefreshesUpdatedAt(t *testing.T) {
	d := NewConversationDAO(testDB(t))

	convo, err := d.Ensure("conv1", "user1", "New conversation")
	require.NoError(t, err)
	before := convo.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, d.Rename("conv1", "user1", "My chat"))

	got, err := d.Get("conv1", "user1")
	require.NoError(t, err)
	require.NotNil(t, got.CustomName)
	assert.Equal(t, "My chat", *got.CustomName)
	assert.Equal(t, "My chat", got.DisplayName())
	assert.True(t, got.UpdatedAt.After(before), "rename must refresh updated_at")
	assert.Equal(t, "New conversation", got.Name, "system name is untouched")
}

func TestSoftDeleteHidesButRetainsRow(t *testing.T) {
	db := testDB(t)
	d := NewConversationDAO(db)

	_, err := d.Ensure("conv1", "user1", "New conversation")
	require.NoError(t, err)
	require.NoError(t, d.SoftDelete("conv1", "user1"))

	list, err := d.List("user1")
	require.NoError(t, err)
	assert.Empty(t, list, "deleted conversation must not be listed")

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "soft delete keeps the row")

	// A new turn on the same id starts a fresh conversation.
	fresh, err := d.Ensure("conv1", "user1", "New conversation")
	require.NoError(t, err)
	assert.False(t, fresh.Deleted)
}

func TestListOrderedByLastUpdateDescending(t *testing.T) {
	d := NewConversationDAO(testDB(t))

	_, err := d.Ensure("conv1", "user1", "first")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = d.Ensure("conv2", "user1", "second")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, d.Rename("conv1", "user1", "renamed"))

	list, err := d.List("user1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "conv1", list[0].ConversationID, "renamed conversation bubbles to the top")
	assert.Equal(t, "conv2", list[1].ConversationID)
}
