package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"userdata/domain/userdata"
	"userdata/infrastructure/persistence/dynamodb"
	apperrors "userdata/pkg/errors"
	"userdata/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo is an in-memory stand-in for the DynamoDB repository. It keeps one
// sorted sk map per partition so listings come back in sort-key order, the
// same guarantee the table provides.
type fakeRepo struct {
	mu      sync.Mutex
	items   map[string]map[string]userdata.Record
	failAll bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]map[string]userdata.Record{}}
}

func (f *fakeRepo) put(userID string, rec userdata.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items[userID] == nil {
		f.items[userID] = map[string]userdata.Record{}
	}
	f.items[userID][rec.SK] = rec
}

func (f *fakeRepo) list(userID, prefix string) []userdata.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.items[userID]))
	for sk := range f.items[userID] {
		if strings.HasPrefix(sk, prefix) {
			keys = append(keys, sk)
		}
	}
	sort.Strings(keys)
	records := make([]userdata.Record, 0, len(keys))
	for _, sk := range keys {
		records = append(records, f.items[userID][sk])
	}
	return records
}

func (f *fakeRepo) err() error {
	if f.failAll {
		return apperrors.NewDatabaseError("PutItem", assert.AnError)
	}
	return nil
}

func (f *fakeRepo) PutProfile(_ context.Context, userID string, userLevel int) error {
	if err := f.err(); err != nil {
		return err
	}
	f.put(userID, userdata.Record{
		UserID:     userID,
		SK:         dynamodb.ProfileSK,
		EntityType: userdata.EntityTypeProfile,
		UserLevel:  userLevel,
		UpdatedAt:  utils.NowMillis(),
	})
	return nil
}

func (f *fakeRepo) GetProfile(_ context.Context, userID string) (*userdata.Record, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	records := f.list(userID, dynamodb.ProfileSK)
	for _, rec := range records {
		if rec.SK == dynamodb.ProfileSK {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) PutBook(_ context.Context, userID, bookID, title string) error {
	if err := f.err(); err != nil {
		return err
	}
	f.put(userID, userdata.Record{
		UserID:     userID,
		SK:         dynamodb.BookSK(bookID),
		EntityType: userdata.EntityTypeBook,
		BookID:     bookID,
		Title:      title,
		CreatedAt:  utils.NowMillis(),
	})
	return nil
}

func (f *fakeRepo) ListBooks(_ context.Context, userID string) ([]userdata.Record, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return f.list(userID, dynamodb.BookPrefix), nil
}

func (f *fakeRepo) PutPage(_ context.Context, userID, bookID, pageNumber string) error {
	if err := f.err(); err != nil {
		return err
	}
	f.put(userID, userdata.Record{
		UserID:     userID,
		SK:         dynamodb.PageSK(bookID, pageNumber),
		EntityType: userdata.EntityTypePage,
		BookID:     bookID,
		PageNumber: pageNumber,
		CreatedAt:  utils.NowMillis(),
	})
	return nil
}

func (f *fakeRepo) ListPages(_ context.Context, userID, bookID string) ([]userdata.Record, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return f.list(userID, dynamodb.PagePrefix(bookID)), nil
}

func (f *fakeRepo) SaveWords(_ context.Context, userID, bookID, pageNumber string, words []userdata.WordInput) error {
	if err := f.err(); err != nil {
		return err
	}
	for _, w := range words {
		f.put(userID, userdata.Record{
			UserID:     userID,
			SK:         dynamodb.WordSK(bookID, pageNumber, w.Word),
			EntityType: userdata.EntityTypeWord,
			BookID:     bookID,
			PageNumber: pageNumber,
			Word:       w.Word,
			Meaning:    w.Meaning,
			Example:    w.Example,
			CreatedAt:  utils.NowMillis(),
		})
	}
	return nil
}

func (f *fakeRepo) ListAll(_ context.Context, userID string) ([]userdata.Record, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return f.list(userID, ""), nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	router := NewRouter(repo, zap.NewNop())
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv, repo
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, userID string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("x-user-id", userID)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "UP", body["status"])
	assert.Equal(t, "user-data-service", body["service"])
}

func TestUpdateAndGetProfile(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, level := range []int{1, 2, 3} {
		resp, body := doRequest(t, srv, http.MethodPost, "/userdata/profile", "u1",
			map[string]interface{}{"userLevel": level})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Profile updated", body["message"])
		assert.Equal(t, float64(level), body["userLevel"])

		resp, body = doRequest(t, srv, http.MethodGet, "/userdata/profile", "u1", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(level), body["userLevel"])
	}
}

func TestUpdateProfileRejectsInvalidLevel(t *testing.T) {
	srv, repo := newTestServer(t)

	for _, payload := range []map[string]interface{}{
		{"userLevel": 0},
		{"userLevel": 4},
		{"userLevel": "2"},
		{},
	} {
		resp, body := doRequest(t, srv, http.MethodPost, "/userdata/profile", "u1", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "userLevel must be 1, 2, or 3", body["error"])
	}

	// Nothing was persisted by the rejected writes.
	assert.Empty(t, repo.list("u1", ""))
}

func TestGetProfileOmitsLevelWhenAbsent(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodGet, "/userdata/profile", "u1", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, present := body["userLevel"]
	assert.False(t, present)
}

func TestCreateAndListBooks(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodPost, "/userdata/books", "u1",
		map[string]interface{}{"bookId": "b1", "title": "Alpha"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Book created", body["message"])
	assert.Equal(t, "b1", body["bookId"])

	resp, body = doRequest(t, srv, http.MethodGet, "/userdata/books", "u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	books, ok := body["books"].([]interface{})
	require.True(t, ok)
	require.Len(t, books, 1)

	book := books[0].(map[string]interface{})
	assert.Equal(t, "u1", book["userId"])
	assert.Equal(t, "BOOK#b1", book["sk"])
	assert.Equal(t, "BOOK", book["entityType"])
	assert.Equal(t, "b1", book["bookId"])
	assert.Equal(t, "Alpha", book["title"])
	assert.Greater(t, book["createdAt"].(float64), float64(0))
}

func TestCreateBookOverwritesSilently(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/userdata/books", "u1",
		map[string]interface{}{"bookId": "b1", "title": "First"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPost, "/userdata/books", "u1",
		map[string]interface{}{"bookId": "b1", "title": "Second"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body := doRequest(t, srv, http.MethodGet, "/userdata/books", "u1", nil)
	books := body["books"].([]interface{})
	require.Len(t, books, 1)
	assert.Equal(t, "Second", books[0].(map[string]interface{})["title"])
}

func TestCreateBookRequiresFields(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, payload := range []map[string]interface{}{
		{"bookId": "b1"},
		{"title": "Alpha"},
		{},
	} {
		resp, body := doRequest(t, srv, http.MethodPost, "/userdata/books", "u1", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "bookId and title required", body["error"])
	}
}

func TestCreateAndListPages(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodPost, "/userdata/books/b1/pages", "u1",
		map[string]interface{}{"pageNumber": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Page created", body["message"])
	assert.Equal(t, float64(1), body["pageNumber"])

	resp, body = doRequest(t, srv, http.MethodGet, "/userdata/books/b1/pages", "u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	pages := body["pages"].([]interface{})
	require.Len(t, pages, 1)
	page := pages[0].(map[string]interface{})
	assert.Equal(t, "BOOK#b1#PAGE#1", page["sk"])
	assert.Equal(t, "PAGE", page["entityType"])
}

func TestCreatePageRequiresPageNumber(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodPost, "/userdata/books/b1/pages", "u1",
		map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "pageNumber required", body["error"])
}

func TestListPagesIncludesNestedWords(t *testing.T) {
	// Word sort keys begin with the page prefix, so the page listing also
	// returns the words under each page. Existing callers depend on this.
	srv, _ := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/userdata/books/b1/pages", "u1",
		map[string]interface{}{"pageNumber": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPost, "/userdata/books/b1/pages/1/words", "u1",
		map[string]interface{}{"words": []map[string]string{{"word": "casa", "meaning": "house"}}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body := doRequest(t, srv, http.MethodGet, "/userdata/books/b1/pages", "u1", nil)
	pages := body["pages"].([]interface{})
	require.Len(t, pages, 2)

	types := make([]string, 0, len(pages))
	for _, p := range pages {
		types = append(types, p.(map[string]interface{})["entityType"].(string))
	}
	assert.ElementsMatch(t, []string{"PAGE", "WORD"}, types)
}

func TestSaveWordsAndListAll(t *testing.T) {
	srv, _ := newTestServer(t)

	words := []map[string]string{
		{"word": "casa", "meaning": "house", "example": "mi casa"},
		{"word": "perro", "meaning": "dog"},
	}
	resp, body := doRequest(t, srv, http.MethodPost, "/userdata/books/b1/pages/1/words", "u1",
		map[string]interface{}{"words": words})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Words saved", body["message"])

	resp, body = doRequest(t, srv, http.MethodGet, "/userdata/words", "u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["count"])

	items := body["items"].([]interface{})
	sks := make([]string, 0, len(items))
	for _, item := range items {
		sks = append(sks, item.(map[string]interface{})["sk"].(string))
	}
	assert.Contains(t, sks, "BOOK#b1#PAGE#1#WORD#casa")
	assert.Contains(t, sks, "BOOK#b1#PAGE#1#WORD#perro")
}

func TestSaveWordsAcceptsEmptyArray(t *testing.T) {
	srv, repo := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/userdata/books/b1/pages/1/words", "u1",
		map[string]interface{}{"words": []map[string]string{}})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, repo.list("u1", ""))
}

func TestSaveWordsRequiresWordsField(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodPost, "/userdata/books/b1/pages/1/words", "u1",
		map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "words[] required", body["error"])
}

func TestSaveWordsAllowsAnonymous(t *testing.T) {
	// The path-scoped save has no identity requirement; missing headers
	// resolve to the anonymous partition.
	srv, repo := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/userdata/books/b1/pages/1/words", "",
		map[string]interface{}{"words": []map[string]string{{"word": "casa"}}})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	records := repo.list("anonymous", "")
	require.Len(t, records, 1)
	assert.Equal(t, "BOOK#b1#PAGE#1#WORD#casa", records[0].SK)
}

func TestBodyScopedSaveWords(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodPost, "/userdata/words", "u1",
		map[string]interface{}{
			"bookId":     "b1",
			"pageNumber": 3,
			"words":      []map[string]string{{"word": "gato", "meaning": "cat"}},
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Words saved", body["message"])
	assert.Equal(t, "b1", body["bookId"])
	assert.Equal(t, float64(3), body["pageNumber"])

	_, body = doRequest(t, srv, http.MethodGet, "/userdata/words", "u1", nil)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "BOOK#b1#PAGE#3#WORD#gato", items[0].(map[string]interface{})["sk"])
}

func TestBodyScopedSaveWordsRequiresFields(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/userdata/words", "u1",
		map[string]interface{}{"words": []map[string]string{{"word": "gato"}}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWordsEndpointsRejectAnonymous(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodGet, "/userdata/words", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])

	resp, body = doRequest(t, srv, http.MethodPost, "/userdata/words", "",
		map[string]interface{}{
			"bookId":     "b1",
			"pageNumber": 1,
			"words":      []map[string]string{{"word": "casa"}},
		})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestListAllReturnsEveryEntityType(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/userdata/profile", "u1",
		map[string]interface{}{"userLevel": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doRequest(t, srv, http.MethodPost, "/userdata/books", "u1",
		map[string]interface{}{"bookId": "b1", "title": "Alpha"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doRequest(t, srv, http.MethodPost, "/userdata/books/b1/pages/1/words", "u1",
		map[string]interface{}{"words": []map[string]string{{"word": "casa"}}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body := doRequest(t, srv, http.MethodGet, "/userdata/words", "u1", nil)
	assert.Equal(t, float64(3), body["count"])

	items := body["items"].([]interface{})
	types := make([]string, 0, len(items))
	for _, item := range items {
		types = append(types, item.(map[string]interface{})["entityType"].(string))
	}
	assert.ElementsMatch(t, []string{"PROFILE", "BOOK", "WORD"}, types)
}

func TestStoreFailureSurfacesAsGeneric500(t *testing.T) {
	srv, repo := newTestServer(t)
	repo.failAll = true

	resp, body := doRequest(t, srv, http.MethodPost, "/userdata/books", "u1",
		map[string]interface{}{"bookId": "b1", "title": "Alpha"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to create book", body["error"])

	resp, body = doRequest(t, srv, http.MethodGet, "/userdata/books", "u1", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to fetch books", body["error"])

	resp, body = doRequest(t, srv, http.MethodGet, "/userdata/words", "u1", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to fetch user data", body["error"])
}
