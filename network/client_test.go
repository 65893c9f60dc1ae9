package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flicker-player/flicker/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a server recording the user agent", t, func() {
		var agent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agent = r.UserAgent()
		}))
		Reset(server.Close)

		Convey("Requests should identify the application", func() {
			resp, err := Client.Get(server.URL)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(agent, ShouldEqual, constant.Flicker+"/"+constant.Version)
		})

		Convey("An explicit user agent should be kept", func() {
			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			req.Header.Set("User-Agent", "custom")
			resp, err := Client.Do(req)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(agent, ShouldEqual, "custom")
		})
	})
}
