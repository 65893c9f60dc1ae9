package filesystem

import (
	"os"
	"testing"

	"github.com/samber/lo"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
			So(IsMemMapFs(), ShouldBeFalse)
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
			So(IsMemMapFs(), ShouldBeTrue)
		})

		Convey("GacheFs should write through the active backend", func() {
			SetMemMapFs()
			So(GacheFs{}.MkdirAll("/cache", 0o755), ShouldBeNil)
			f, err := GacheFs{}.OpenFile("/cache/probes.json", os.O_RDWR|os.O_CREATE, 0o644)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
			So(lo.Must(API().Exists("/cache/probes.json")), ShouldBeTrue)
		})
	})
}
