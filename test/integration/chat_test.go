package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"fairway_backend/internal/models"
	"fairway_backend/internal/services/dto"
	"fairway_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawPost is DoJSON without test assertions, safe to call from goroutines.
func rawPost(ts *helpers.TestServer, path, token string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest("POST", ts.Server.URL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return http.DefaultClient.Do(req)
}

func TestConversationAndMessages(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)

	coachToken, coachID := helpers.RegisterAndLogin(t, ts, "coach@example.com", "Jordan Banks", models.UserRoleCoach)
	studentToken, studentID := helpers.RegisterAndLogin(t, ts, "student@example.com", "Alex", models.UserRoleStudent)
	strangerToken, _ := helpers.RegisterAndLogin(t, ts, "other@example.com", "Sam", models.UserRoleStudent)

	// Student opens the conversation.
	var conv dto.ConversationResponse
	resp := ts.DoJSON(t, "POST", "/api/v1/conversation", studentToken,
		dto.CreateConversationRequest{CoachID: coachID}, &conv)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, coachID, conv.CoachID)
	assert.Equal(t, studentID, conv.StudentID)

	// The coach "opening" it lands on the same row.
	var conv2 dto.ConversationResponse
	resp = ts.DoJSON(t, "POST", "/api/v1/conversation", coachToken,
		dto.CreateConversationRequest{StudentID: studentID}, &conv2)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, conv.ID, conv2.ID)

	// Messages flow both ways.
	var msg dto.MessageResponse
	resp = ts.DoJSON(t, "POST", "/api/v1/message", studentToken, dto.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        "When are you free this week?",
	}, &msg)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.DoJSON(t, "POST", "/api/v1/message", coachToken, dto.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        "Thursday morning works.",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Only participants can read the history.
	var history struct {
		Messages []dto.MessageResponse `json:"messages"`
	}
	resp = ts.DoJSON(t, "GET", "/api/v1/messages/"+conv.ID, studentToken, nil, &history)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "When are you free this week?", history.Messages[0].Content)

	resp = ts.DoJSON(t, "GET", "/api/v1/messages/"+conv.ID, strangerToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Inbox shows unread counts and the latest message.
	var inbox dto.ConversationListResponse
	resp = ts.DoJSON(t, "GET", "/api/v1/conversations", studentToken, nil, &inbox)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, inbox.Conversations, 1)
	assert.Equal(t, "Thursday morning works.", inbox.Conversations[0].LastMessage)
	assert.EqualValues(t, 1, inbox.Conversations[0].UnreadCount)

	// Marking read zeroes the counter.
	resp = ts.DoJSON(t, "POST", "/api/v1/conversations/"+conv.ID+"/read", studentToken, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.DoJSON(t, "GET", "/api/v1/conversations", studentToken, nil, &inbox)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, inbox.Conversations[0].UnreadCount)
}

func TestConcurrentConversationCreation(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)

	coachToken, coachID := helpers.RegisterAndLogin(t, ts, "coach@example.com", "Jordan Banks", models.UserRoleCoach)
	studentToken, studentID := helpers.RegisterAndLogin(t, ts, "student@example.com", "Alex", models.UserRoleStudent)

	// Both parties hammer the endpoint at once; every call must land on the
	// same row.
	const perSide = 4
	type result struct {
		status string
		code   int
		id     string
	}
	results := make(chan result, perSide*2)

	var wg sync.WaitGroup
	fire := func(token string, body dto.CreateConversationRequest) {
		defer wg.Done()
		resp, err := rawPost(ts, "/api/v1/conversation", token, body)
		if err != nil {
			results <- result{status: err.Error()}
			return
		}
		defer resp.Body.Close()
		var conv dto.ConversationResponse
		if err := json.NewDecoder(resp.Body).Decode(&conv); err != nil {
			results <- result{status: err.Error(), code: resp.StatusCode}
			return
		}
		results <- result{code: resp.StatusCode, id: conv.ID}
	}

	for i := 0; i < perSide; i++ {
		wg.Add(2)
		go fire(studentToken, dto.CreateConversationRequest{CoachID: coachID})
		go fire(coachToken, dto.CreateConversationRequest{StudentID: studentID})
	}
	wg.Wait()
	close(results)

	ids := make(map[string]bool)
	for r := range results {
		require.Empty(t, r.status)
		require.Equal(t, http.StatusOK, r.code)
		require.NotEmpty(t, r.id)
		ids[r.id] = true
	}
	assert.Len(t, ids, 1)

	var count int64
	require.NoError(t, ts.DB.Table("chat.conversations").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSendMessageValidation(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)

	_, coachID := helpers.RegisterAndLogin(t, ts, "coach@example.com", "Jordan Banks", models.UserRoleCoach)
	studentToken, _ := helpers.RegisterAndLogin(t, ts, "student@example.com", "Alex", models.UserRoleStudent)

	var conv dto.ConversationResponse
	resp := ts.DoJSON(t, "POST", "/api/v1/conversation", studentToken,
		dto.CreateConversationRequest{CoachID: coachID}, &conv)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Whitespace-only content is refused.
	resp = ts.DoJSON(t, "POST", "/api/v1/message", studentToken, dto.SendMessageRequest{
		ConversationID: conv.ID,
		Content:        "   ",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown conversation is a 404.
	resp = ts.DoJSON(t, "POST", "/api/v1/message", studentToken, dto.SendMessageRequest{
		ConversationID: "00000000-0000-0000-0000-000000000000",
		Content:        "hello",
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminApprovalFlow(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)

	_, coachID := helpers.RegisterAndLogin(t, ts, "coach@example.com", "Jordan Banks", models.UserRoleCoach)
	studentToken, _ := helpers.RegisterAndLogin(t, ts, "student@example.com", "Alex", models.UserRoleStudent)
	adminToken, _ := helpers.CreateAdmin(t, ts, "admin@example.com")

	// Hidden from the directory while pending.
	var listing dto.CoachListResponse
	resp := ts.DoJSON(t, "GET", "/api/v1/coaches", "", nil, &listing)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, listing.Coaches)

	// Students cannot reach the moderation queue.
	resp = ts.DoJSON(t, "GET", "/api/v1/admin/coaches/pending", studentToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.DoJSON(t, "GET", "/api/v1/admin/coaches/pending", adminToken, nil, &listing)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listing.Coaches, 1)
	profileID := listing.Coaches[0].ID

	resp = ts.DoJSON(t, "POST", "/api/v1/admin/coaches/"+profileID+"/approve", adminToken, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Now listed publicly.
	resp = ts.DoJSON(t, "GET", "/api/v1/coaches", "", nil, &listing)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listing.Coaches, 1)
	assert.Equal(t, coachID, listing.Coaches[0].UserID)

	// Approving twice conflicts.
	resp = ts.DoJSON(t, "POST", "/api/v1/admin/coaches/"+profileID+"/approve", adminToken, nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
