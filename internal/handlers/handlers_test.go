package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socketBoard/internal/handlers"
	"socketBoard/internal/models/whiteboard"
	"socketBoard/internal/repositories"
	httpServer "socketBoard/internal/servers/http"
	"socketBoard/internal/services"
)

type testEnv struct {
	router      *gin.Engine
	boards      *services.WhiteboardService
	presence    *services.PresenceService
	socket      *handlers.SocketWhiteboardHandler
	files       *fakeFileManager
	redisClient *redis.Client
}

type fakeFileManager struct {
	uploads int
}

func (f *fakeFileManager) UploadFile(_ context.Context, fileName string, _ io.Reader, _ int64, _ string, bucketName string) (string, error) {
	f.uploads++
	return "http://files/" + bucketName + "/" + fileName, nil
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "board.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&whiteboard.Whiteboard{}, &whiteboard.BoardItem{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	boards := services.NewWhiteboardService(repositories.NewWhiteboardRepository(db))
	presenceService := services.NewPresenceService(rdb, 0)
	files := &fakeFileManager{}
	fileService := services.NewFileManagerService(files, 0)

	rest := handlers.NewRestHandler(boards, presenceService, fileService, 0,
		handlers.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)
	socket := handlers.NewSocketWhiteboardHandler(rdb, context.Background(), boards, presenceService)
	t.Cleanup(socket.Close)

	return &testEnv{
		router:      httpServer.NewRouter(rest, socket),
		boards:      boards,
		presence:    presenceService,
		socket:      socket,
		files:       files,
		redisClient: rdb,
	}
}

func (env *testEnv) do(t *testing.T, method, path string, body io.Reader, contentType string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Header().Get("Content-Type") != "image/png" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

func (env *testEnv) doJSON(t *testing.T, method, path string, v any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return env.do(t, method, path, bytes.NewReader(raw), "application/json")
}

func (env *testEnv) createBoard(t *testing.T, name string) whiteboard.Whiteboard {
	t.Helper()
	rec, resp := env.doJSON(t, http.MethodPost, "/whiteboards", whiteboard.CreateWhiteboardRequest{Name: name, OwnerID: "u1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var board whiteboard.Whiteboard
	require.NoError(t, json.Unmarshal(resp.Data, &board))
	return board
}

func TestCreateAndGetWhiteboard(t *testing.T) {
	env := newTestEnv(t)
	board := env.createBoard(t, "Sprint")
	assert.Equal(t, "Sprint", board.Name)

	rec, resp := env.do(t, http.MethodGet, "/whiteboards/"+board.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got whiteboard.BoardWithItems
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, board.ID, got.ID)
	assert.Empty(t, got.Items)

	rec, resp = env.do(t, http.MethodGet, "/whiteboards", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []whiteboard.Whiteboard
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Len(t, list, 1)
}

func TestWhiteboardErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		err    string
	}{
		{"empty name", http.MethodPost, "/whiteboards", whiteboard.CreateWhiteboardRequest{Name: " "}, http.StatusBadRequest, "whiteboard name is empty"},
		{"bad id", http.MethodGet, "/whiteboards/not-a-uuid", nil, http.StatusBadRequest, "invalid whiteboard id"},
		{"unknown board", http.MethodGet, "/whiteboards/6f1c2a4e-8d7b-4b8e-9a55-0d2f9e5b7c11", nil, http.StatusNotFound, "whiteboard not found"},
		{"save unknown board", http.MethodPut, "/whiteboards/6f1c2a4e-8d7b-4b8e-9a55-0d2f9e5b7c11/items", whiteboard.SaveItemsRequest{}, http.StatusNotFound, "whiteboard not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := env.doJSON(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, []string{tt.err}, resp.Errors)
		})
	}
}

func TestSaveItemsAndFavorite(t *testing.T) {
	env := newTestEnv(t)
	board := env.createBoard(t, "Plan")

	rec, _ := env.doJSON(t, http.MethodPut, "/whiteboards/"+board.ID+"/items", whiteboard.SaveItemsRequest{
		EditorID: "u7",
		Items: []whiteboard.Item{
			{ID: "a", Type: whiteboard.ItemNote, Content: "hi"},
			{ID: "b", Type: whiteboard.ItemBox, Width: 200, Height: 150},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	items, err := env.boards.Items(board.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "u7", items[0].LastEditedBy)

	rec, resp := env.doJSON(t, http.MethodPut, "/whiteboards/"+board.ID+"/items", whiteboard.SaveItemsRequest{
		Items: []whiteboard.Item{{Type: whiteboard.ItemBox}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"invalid item"}, resp.Errors)

	rec, resp = env.do(t, http.MethodPost, "/whiteboards/"+board.ID+"/favorite", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fav whiteboard.Whiteboard
	require.NoError(t, json.Unmarshal(resp.Data, &fav))
	assert.True(t, fav.IsFavorite)
}

func multipartImage(t *testing.T, fileName string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", fileName)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadWhiteboardImage(t *testing.T) {
	env := newTestEnv(t)
	board := env.createBoard(t, "Moodboard")

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	body, contentType := multipartImage(t, "cat.png", img.Bytes())
	rec, resp := env.do(t, http.MethodPost, "/whiteboards/"+board.ID+"/images", body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var data struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Contains(t, data.URL, "http://files/whiteboard-images/whiteboards/")
	assert.Equal(t, 1, env.files.uploads)

	body, contentType = multipartImage(t, "notes.png", []byte("definitely not an image"))
	rec, resp = env.do(t, http.MethodPost, "/whiteboards/"+board.ID+"/images", body, contentType)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, []string{"file is not an image"}, resp.Errors)
	assert.Equal(t, 1, env.files.uploads)

	rec, resp = env.do(t, http.MethodPost, "/whiteboards/"+board.ID+"/images", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"no file uploaded"}, resp.Errors)
}

func TestCollaboratorRoster(t *testing.T) {
	env := newTestEnv(t)
	board := env.createBoard(t, "Team")
	path := "/whiteboards/" + board.ID + "/collaborators"

	roster := func(resp apiResponse) []whiteboard.Collaborator {
		var out []whiteboard.Collaborator
		require.NoError(t, json.Unmarshal(resp.Data, &out))
		return out
	}

	rec, resp := env.do(t, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []whiteboard.Collaborator{
		{Member: whiteboard.Member{ID: "u1"}, Role: whiteboard.CollaboratorRoleOwner},
	}, roster(resp))

	rec, resp = env.doJSON(t, http.MethodPost, path, whiteboard.AddCollaboratorRequest{UserID: "u2", Email: "ana@board.dev"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := roster(resp)
	require.Len(t, got, 2)
	assert.Equal(t, whiteboard.CollaboratorRoleOwner, got[0].Role)
	assert.Equal(t, whiteboard.Collaborator{
		Member: whiteboard.Member{ID: "u2", Email: "ana@board.dev", Name: "ana@board.dev"},
		Role:   whiteboard.CollaboratorRoleEditor,
	}, got[1])

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		err    string
	}{
		{"duplicate member", http.MethodPost, path, whiteboard.AddCollaboratorRequest{UserID: "u2"}, http.StatusConflict, "user is already a collaborator"},
		{"owner is already a member", http.MethodPost, path, whiteboard.AddCollaboratorRequest{UserID: "u1"}, http.StatusConflict, "user is already a collaborator"},
		{"missing user id", http.MethodPost, path, whiteboard.AddCollaboratorRequest{Email: "x@board.dev"}, http.StatusBadRequest, "user id is empty"},
		{"remove owner", http.MethodDelete, path + "/u1", nil, http.StatusBadRequest, "the owner cannot be removed"},
		{"remove stranger", http.MethodDelete, path + "/u9", nil, http.StatusNotFound, "collaborator not found"},
		{"unknown board", http.MethodGet, "/whiteboards/6f1c1f7e-0000-4000-8000-000000000000/collaborators", nil, http.StatusNotFound, "whiteboard not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			var resp apiResponse
			if tt.body != nil {
				rec, resp = env.doJSON(t, tt.method, tt.path, tt.body)
			} else {
				rec, resp = env.do(t, tt.method, tt.path, nil, "")
			}
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, []string{tt.err}, resp.Errors)
		})
	}

	rec, resp = env.do(t, http.MethodDelete, path+"/u2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, roster(resp), 1)

	stored, err := env.boards.FindWhiteboard(board.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Collaborators)
}

func TestExportWhiteboardPNG(t *testing.T) {
	env := newTestEnv(t)
	board := env.createBoard(t, "Export")
	require.NoError(t, env.boards.SaveItems(board.ID, []whiteboard.Item{
		{ID: "a", Type: whiteboard.ItemBox, Width: 100, Height: 50, Fill: true},
	}))

	rec, _ := env.do(t, http.MethodGet, "/whiteboards/"+board.ID+"/export.png", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 180, img.Bounds().Dx())
	assert.Equal(t, 130, img.Bounds().Dy())
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec, resp := env.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.JSONEq(t, `{"redis":"ok"}`, string(resp.Data))
}
