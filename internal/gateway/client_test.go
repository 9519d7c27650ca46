package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestChat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Schedule a meeting tomorrow at 3pm", req.Message)

		json.NewEncoder(w).Encode(ChatResponse{Response: "Done, meeting scheduled."})
	})

	reply, err := c.Chat(context.Background(), "Schedule a meeting tomorrow at 3pm")
	require.NoError(t, err)
	assert.Equal(t, "Done, meeting scheduled.", reply)
}

func TestChatEmptyReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	reply, err := c.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Empty(t, reply, "absent response field is a valid empty reply, not an error")
}

func TestChatMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": `))
	})

	_, err := c.Chat(context.Background(), "hello")
	require.Error(t, err)
	var serr *StatusError
	assert.False(t, errors.As(err, &serr), "decode failures are transport-shaped, not status errors")
}

func TestMeetings(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Meeting
	}{
		{
			name: "one meeting",
			body: `{"meetings":[{"title":"Standup","start_time":"09:00","duration":15}],"formatted_text":"ignored"}`,
			want: []Meeting{{Title: "Standup", StartTime: "09:00", Duration: 15}},
		},
		{
			name: "order preserved",
			body: `{"meetings":[{"title":"B","start_time":"10:00","duration":30},{"title":"A","start_time":"09:00","duration":15}]}`,
			want: []Meeting{{Title: "B", StartTime: "10:00", Duration: 30}, {Title: "A", StartTime: "09:00", Duration: 15}},
		},
		{
			name: "empty array",
			body: `{"meetings":[]}`,
			want: []Meeting{},
		},
		{
			name: "absent field treated as empty",
			body: `{"formatted_text":"No meetings."}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/meetings", r.URL.Path)
				w.Write([]byte(tt.body))
			})
			got, err := c.Meetings(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSendEmail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/email", r.URL.Path)

		var req EmailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, EmailRequest{To: "a@b.c", Subject: "hi", Body: "text"}, req)

		w.Write([]byte(`{"status":"success"}`))
	})

	err := c.SendEmail(context.Background(), EmailRequest{To: "a@b.c", Subject: "hi", Body: "text"})
	assert.NoError(t, err)
}

func TestSendEmailFailureDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"invalid recipient"}`))
	})

	err := c.SendEmail(context.Background(), EmailRequest{To: "nope"})
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.Code)
	assert.Equal(t, "invalid recipient", serr.Detail)
	assert.Equal(t, "invalid recipient", serr.Error())
}

func TestSendEmailFailureWithoutDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.SendEmail(context.Background(), EmailRequest{})
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Empty(t, serr.Detail)
	assert.Contains(t, serr.Error(), "500")
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok"}`))
	})
	assert.NoError(t, c.Health(context.Background()))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	_, err := c.Chat(context.Background(), "hello")
	require.Error(t, err)
	var serr *StatusError
	assert.False(t, errors.As(err, &serr))
}
