package version

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flicker-player/flicker/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func releaseServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, body)
	}))
}

func TestFetchLatest(t *testing.T) {
	Convey("Given a release API", t, func() {
		Convey("A release should be read without the tag prefix", func() {
			server := releaseServer(http.StatusOK, `{"tag_name": "v9.9.9"}`)
			defer server.Close()

			latest, err := fetchLatest(server.URL)
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "9.9.9")
		})

		Convey("A rate limited answer should be an error", func() {
			server := releaseServer(http.StatusForbidden, "rate limited")
			defer server.Close()

			_, err := fetchLatest(server.URL)
			So(err, ShouldNotBeNil)
		})

		Convey("A release without a tag should be an error", func() {
			server := releaseServer(http.StatusOK, `{}`)
			defer server.Close()

			_, err := fetchLatest(server.URL)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLatest(t *testing.T) {
	Convey("Latest should answer from the cache after the first lookup", t, func() {
		filesystem.SetMemMapFs()

		var requests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			_, _ = fmt.Fprint(w, `{"tag_name": "v9.9.9"}`)
		}))
		defer server.Close()

		previous := releaseAPI
		releaseAPI = server.URL
		defer func() { releaseAPI = previous }()

		for i := 0; i < 3; i++ {
			latest, err := Latest()
			So(err, ShouldBeNil)
			So(latest, ShouldEqual, "9.9.9")
		}
		So(requests, ShouldBeLessThanOrEqualTo, 1)
	})
}

func TestNewer(t *testing.T) {
	Convey("newer", t, func() {
		So(newer("0.2.0", "0.1.0"), ShouldBeTrue)
		So(newer("0.1.0", "0.1.0"), ShouldBeFalse)
		So(newer("garbage", "0.1.0"), ShouldBeFalse)
	})
}
