package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard-server/cache"
	"postboard-server/db"
	"postboard-server/shared"
)

var (
	setupOnce sync.Once
	setupErr  error
	// Held for the lifetime of the test binary so that packages sharing
	// TEST_DATABASE_URL don't recreate the schema under each other.
	lockConn *sql.Conn
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dbUrl := os.Getenv("TEST_DATABASE_URL")
	if dbUrl == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	setupOnce.Do(func() {
		db.Conn, setupErr = sqlx.Connect("postgres", dbUrl)
		if setupErr != nil {
			return
		}

		lockConn, setupErr = db.Conn.DB.Conn(context.Background())
		if setupErr != nil {
			return
		}

		if _, setupErr = lockConn.ExecContext(context.Background(), "SELECT pg_advisory_lock(217900)"); setupErr != nil {
			return
		}

		if down, err := os.ReadFile("../migrations/000001_init.down.sql"); err == nil {
			db.Conn.Exec(string(down))
		}

		up, err := os.ReadFile("../migrations/000001_init.up.sql")
		if err != nil {
			setupErr = err
			return
		}

		_, setupErr = db.Conn.Exec(string(up))
	})

	require.NoError(t, setupErr)
}

func createSignedInUser(t *testing.T, username string) (*db.User, *http.Cookie) {
	t.Helper()

	user, err := db.CreateUser(username, "x")
	require.NoError(t, err)

	token, err := db.CreateSession(user.Id)
	require.NoError(t, err)

	return user, &http.Cookie{Name: sessionCookieName, Value: token}
}

func postForm(target string, vars map[string]string, values url.Values, cookie *http.Cookie) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req, httptest.NewRecorder()
}

func TestEditByNonAuthorSilentlyRedirects(t *testing.T) {
	setupTestDB(t)

	owner, _ := createSignedInUser(t, "editOwner")
	_, intruderCookie := createSignedInUser(t, "editIntruder")

	post, err := db.CreatePost(owner.Id, "original text", nil, nil)
	require.NoError(t, err)

	req, rr := postForm(
		postDetailPath(post.Id)+"edit/",
		map[string]string{"id": itoa(post.Id)},
		url.Values{"text": {"hijacked"}},
		intruderCookie,
	)
	EditPostHandler(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, postDetailPath(post.Id), rr.Header().Get("Location"))

	kept, err := db.GetFeedPost(post.Id)
	require.NoError(t, err)
	assert.Equal(t, "original text", kept.Text)
}

func TestEditByAuthorUpdatesPost(t *testing.T) {
	setupTestDB(t)

	owner, cookie := createSignedInUser(t, "editAuthor")

	post, err := db.CreatePost(owner.Id, "before edit", nil, nil)
	require.NoError(t, err)

	req, rr := postForm(
		postDetailPath(post.Id)+"edit/",
		map[string]string{"id": itoa(post.Id)},
		url.Values{"text": {"after edit"}},
		cookie,
	)
	EditPostHandler(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, postDetailPath(post.Id), rr.Header().Get("Location"))

	edited, err := db.GetFeedPost(post.Id)
	require.NoError(t, err)
	assert.Equal(t, "after edit", edited.Text)
	// pub_date is immutable.
	assert.Equal(t, post.PubDate.Unix(), edited.PubDate.Unix())
}

func TestCreatePostRedirectsToProfile(t *testing.T) {
	setupTestDB(t)

	author, cookie := createSignedInUser(t, "createAuthor")

	req, rr := postForm("/create/", nil, url.Values{"text": {"my first post"}}, cookie)
	CreatePostHandler(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, profilePath(author.Username), rr.Header().Get("Location"))

	posts, err := db.ListPostsByAuthor(author.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "my first post", posts[0].Text)
	assert.Equal(t, author.Id, posts[0].AuthorId)
}

func TestCreatePostValidationFailureDoesNotPersist(t *testing.T) {
	setupTestDB(t)

	author, cookie := createSignedInUser(t, "createInvalid")

	req, rr := postForm("/create/", nil, url.Values{"text": {""}}, cookie)
	CreatePostHandler(rr, req)

	// Validation failures re-serve the form with a success status.
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "This field is required.")

	count, err := db.CountPostsByAuthor(author.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAddCommentRedirectsToPostDetail(t *testing.T) {
	setupTestDB(t)

	author, _ := createSignedInUser(t, "commentPostAuthor")
	_, commenterCookie := createSignedInUser(t, "commentWriter")

	post, err := db.CreatePost(author.Id, "comment on me", nil, nil)
	require.NoError(t, err)

	req, rr := postForm(
		postDetailPath(post.Id)+"comment/",
		map[string]string{"id": itoa(post.Id)},
		url.Values{"text": {"nice post"}},
		commenterCookie,
	)
	AddCommentHandler(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, postDetailPath(post.Id), rr.Header().Get("Location"))

	comments, err := db.ListCommentsForPost(post.Id)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice post", comments[0].Text)
	assert.Equal(t, "commentWriter", comments[0].AuthorUsername)
}

func TestFollowUnfollowFlow(t *testing.T) {
	setupTestDB(t)

	viewer, viewerCookie := createSignedInUser(t, "flowViewer")
	author, _ := createSignedInUser(t, "flowAuthor")

	follow := func() *httptest.ResponseRecorder {
		req, rr := newTestRequest(http.MethodGet, profilePath(author.Username)+"follow/", map[string]string{"username": author.Username})
		req.AddCookie(viewerCookie)
		FollowUserHandler(rr, req)
		return rr
	}

	rr := follow()
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, profilePath(author.Username), rr.Header().Get("Location"))

	// Following twice leaves exactly one edge.
	follow()
	var count int
	require.NoError(t, db.Conn.QueryRow(
		"SELECT COUNT(*) FROM follows WHERE user_id = $1 AND author_id = $2",
		viewer.Id, author.Id,
	).Scan(&count))
	assert.Equal(t, 1, count)

	// Self-follow through the handler is a guarded no-op.
	req, rr := newTestRequest(http.MethodGet, profilePath(viewer.Username)+"follow/", map[string]string{"username": viewer.Username})
	req.AddCookie(viewerCookie)
	FollowUserHandler(rr, req)
	assert.Equal(t, http.StatusFound, rr.Code)
	following, err := db.IsFollowing(viewer.Id, viewer.Id)
	require.NoError(t, err)
	assert.False(t, following)

	unfollow := func() *httptest.ResponseRecorder {
		req, rr := newTestRequest(http.MethodGet, profilePath(author.Username)+"unfollow/", map[string]string{"username": author.Username})
		req.AddCookie(viewerCookie)
		UnfollowUserHandler(rr, req)
		return rr
	}

	rr = unfollow()
	assert.Equal(t, http.StatusFound, rr.Code)
	following, err = db.IsFollowing(viewer.Id, author.Id)
	require.NoError(t, err)
	assert.False(t, following)

	// Double unfollow stays a redirect, not an error.
	rr = unfollow()
	assert.Equal(t, http.StatusFound, rr.Code)
}

func TestProfilePagination(t *testing.T) {
	setupTestDB(t)

	author, _ := createSignedInUser(t, "pagesAuthor")

	for i := 0; i < 11; i++ {
		_, err := db.CreatePost(author.Id, "numbered post", nil, nil)
		require.NoError(t, err)
	}

	get := func(target string) *httptest.ResponseRecorder {
		req, rr := newTestRequest(http.MethodGet, target, map[string]string{"username": author.Username})
		ProfileHandler(rr, req)
		return rr
	}

	rr := get(profilePath(author.Username))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"numPages":2`)
	assert.Equal(t, 10, strings.Count(rr.Body.String(), `"numbered post"`))

	rr = get(profilePath(author.Username) + "?page=2")
	assert.Equal(t, 1, strings.Count(rr.Body.String(), `"numbered post"`))
}

func TestHomeFeedServesStaleCacheUntilCleared(t *testing.T) {
	setupTestDB(t)

	redisAddr := os.Getenv("TEST_REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	Pages = cache.NewPagesCache(&redis.Options{Addr: redisAddr}, time.Minute)
	defer func() {
		Pages.Clear()
		Pages = nil
	}()
	Pages.Clear()

	author, _ := createSignedInUser(t, "cacheAuthor")
	post, err := db.CreatePost(author.Id, "soon to be deleted", nil, nil)
	require.NoError(t, err)

	get := func() *httptest.ResponseRecorder {
		req, rr := newTestRequest(http.MethodGet, "/", nil)
		HomeFeedHandler(rr, req)
		return rr
	}

	rr := get()
	assert.Contains(t, rr.Body.String(), "soon to be deleted")

	require.NoError(t, db.DeletePost(post.Id))

	// The cached page still shows the deleted post.
	rr = get()
	assert.Contains(t, rr.Body.String(), "soon to be deleted")

	Pages.Clear()

	rr = get()
	assert.NotContains(t, rr.Body.String(), "soon to be deleted")
}

func TestSignupLoginFlow(t *testing.T) {
	setupTestDB(t)

	req, rr := postForm("/auth/signup/", nil, url.Values{
		"username": {"loginFlowUser"},
		"password": {"s3cretpass"},
	}, nil)
	SignupHandler(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	require.NotEmpty(t, rr.Result().Cookies())

	// Wrong password re-serves the login form.
	req, rr = postForm("/auth/login/", nil, url.Values{
		"username": {"loginFlowUser"},
		"password": {"wrongpass"},
	}, nil)
	SignInHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please enter a correct username and password.")

	// Successful login honors the return target.
	req, rr = postForm("/auth/login/", nil, url.Values{
		"username": {"loginFlowUser"},
		"password": {"s3cretpass"},
		"next":     {"/follow/"},
	}, nil)
	SignInHandler(rr, req)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/follow/", rr.Header().Get("Location"))
}

func TestSignupDuplicateUsernameReservesForm(t *testing.T) {
	setupTestDB(t)

	form := url.Values{
		"username": {"dupFormUser"},
		"password": {"s3cretpass"},
	}

	req, rr := postForm("/auth/signup/", nil, form, nil)
	SignupHandler(rr, req)
	require.Equal(t, http.StatusFound, rr.Code)

	// The second signup loses the name and gets the form back, not a 500.
	req, rr = postForm("/auth/signup/", nil, form, nil)
	SignupHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "A user with that username already exists.")
	assert.Empty(t, rr.Result().Cookies())
}

func TestGroupFeedShowsOnlyGroupPosts(t *testing.T) {
	setupTestDB(t)

	author, _ := createSignedInUser(t, "groupFeedHandlerAuthor")

	cats, err := db.CreateGroup("Feed Cats", "feed-cats", "about cats")
	require.NoError(t, err)
	dogs, err := db.CreateGroup("Feed Dogs", "feed-dogs", "about dogs")
	require.NoError(t, err)

	older, err := db.CreatePost(author.Id, "cats older", &cats.Id, nil)
	require.NoError(t, err)
	newer, err := db.CreatePost(author.Id, "cats newer", &cats.Id, nil)
	require.NoError(t, err)
	_, err = db.CreatePost(author.Id, "dogs post", &dogs.Id, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/group/feed-cats/", nil)
	req = mux.SetURLVars(req, map[string]string{"slug": "feed-cats"})
	rr := httptest.NewRecorder()
	GroupFeedHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var res shared.GroupFeedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))

	assert.Equal(t, "feed-cats", res.Group.Slug)
	require.Len(t, res.Posts, 2)
	assert.Equal(t, newer.Id, res.Posts[0].Id)
	assert.Equal(t, older.Id, res.Posts[1].Id)
	assert.NotContains(t, rr.Body.String(), "dogs post")
}

func TestGroupFeedUnknownSlugNotFound(t *testing.T) {
	setupTestDB(t)

	req := httptest.NewRequest(http.MethodGet, "/group/no-such-group/", nil)
	req = mux.SetURLVars(req, map[string]string{"slug": "no-such-group"})
	rr := httptest.NewRecorder()
	GroupFeedHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
