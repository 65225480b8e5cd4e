package words_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/sema/internal/domain/words"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a word list file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "secretwords.json")

		Convey("When the file holds a JSON array of words", func() {
			So(os.WriteFile(path, []byte(`["kite","banana","string"]`), 0o600), ShouldBeNil)

			list, err := words.Load(path)
			So(err, ShouldBeNil)
			So(len(list), ShouldEqual, 3)
			So(list[0], ShouldEqual, "kite")
		})

		Convey("When the file is missing", func() {
			_, err := words.Load(filepath.Join(dir, "nope.json"))
			So(err, ShouldWrap, words.ErrLoadList)
		})

		Convey("When the file is not valid JSON", func() {
			So(os.WriteFile(path, []byte("kite banana"), 0o600), ShouldBeNil)

			_, err := words.Load(path)
			So(err, ShouldWrap, words.ErrLoadList)
		})

		Convey("When the list is empty", func() {
			So(os.WriteFile(path, []byte(`[]`), 0o600), ShouldBeNil)

			_, err := words.Load(path)
			So(err, ShouldWrap, words.ErrEmptyList)
		})
	})
}

func TestChoose(t *testing.T) {
	Convey("Given a word list and a seeded random source", t, func() {
		list := words.List{"alpha", "beta", "gamma", "delta"}

		Convey("Then the draw is a pure function of list and seed", func() {
			a, err := words.Choose(list, rand.New(rand.NewSource(42)))
			So(err, ShouldBeNil)
			b, err := words.Choose(list, rand.New(rand.NewSource(42)))
			So(err, ShouldBeNil)
			So(a, ShouldEqual, b)
		})

		Convey("Then every draw comes from the list", func() {
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 50; i++ {
				w, err := words.Choose(list, rng)
				So(err, ShouldBeNil)
				So(list, ShouldContain, w)
			}
		})

		Convey("When the list is empty", func() {
			_, err := words.Choose(nil, rand.New(rand.NewSource(1)))
			So(err, ShouldWrap, words.ErrEmptyList)
		})
	})
}
