package tags

import (
	"encoding/binary"
	"testing"

	"github.com/flicker-player/flicker/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

// id3Title builds a minimal ID3v2.3 tag holding a single TIT2 frame.
func id3Title(title string) []byte {
	body := append([]byte{0}, title...)

	frame := []byte("TIT2")
	frame = binary.BigEndian.AppendUint32(frame, uint32(len(body)))
	frame = append(frame, 0, 0)
	frame = append(frame, body...)

	size := len(frame)
	header := []byte{'I', 'D', '3', 3, 0, 0,
		byte(size >> 21 & 0x7f), byte(size >> 14 & 0x7f), byte(size >> 7 & 0x7f), byte(size & 0x7f)}

	data := append(header, frame...)
	return append(data, make([]byte, 256)...)
}

func TestRead(t *testing.T) {
	Convey("Read", t, func() {
		filesystem.SetMemMapFs()

		Convey("Should extract an ID3 title", func() {
			lo.Must0(filesystem.API().WriteFile("/music/song.mp3", id3Title("Sine Wave"), 0o644))
			tags, err := Read("/music/song.mp3")
			So(err, ShouldBeNil)
			So(tags.Title, ShouldEqual, "Sine Wave")
			So(tags.Display("song"), ShouldEqual, "Sine Wave")
		})

		Convey("Should return empty tags for untagged data", func() {
			lo.Must0(filesystem.API().WriteFile("/videos/raw.bin", make([]byte, 512), 0o644))
			tags, err := Read("/videos/raw.bin")
			So(err, ShouldBeNil)
			So(tags, ShouldResemble, Tags{})
		})

		Convey("Should fail for missing files", func() {
			_, err := Read("/videos/missing.mkv")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDisplay(t *testing.T) {
	Convey("Display", t, func() {
		So(Tags{Title: "Song", Artist: "Band"}.Display("x"), ShouldEqual, "Band - Song")
		So(Tags{}.Display("clip"), ShouldEqual, "clip")
	})
}
