// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavl_test

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jba/wavl"
	"github.com/jba/wavl/internal/invariant"
)

func TestScenarios(t *testing.T) {
	Convey("Given a tree holding 10, 20, 5, 15 and 30", t, func() {
		tree := wavl.New[string]()
		for _, k := range []int{10, 20, 5, 15, 30} {
			_, err := tree.Insert(k, fmt.Sprint("v", k))
			So(err, ShouldBeNil)
		}

		Convey("The keys come out sorted", func() {
			So(tree.Keys(), ShouldResemble, []int{5, 10, 15, 20, 30})
			So(tree.Len(), ShouldEqual, 5)
			So(invariant.CheckInsertOnly(tree), ShouldBeNil)
		})

		Convey("Deleting the root keeps the rest", func() {
			steps, err := tree.Delete(10)
			So(err, ShouldBeNil)
			So(steps, ShouldBeGreaterThanOrEqualTo, 0)

			_, ok := tree.Get(10)
			So(ok, ShouldBeFalse)
			So(tree.Keys(), ShouldResemble, []int{5, 15, 20, 30})
			So(invariant.Check(tree), ShouldBeNil)
		})

		Convey("Select finds the third smallest key", func() {
			v, err := tree.Select(3)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "v15")
		})

		Convey("A duplicate insert is rejected", func() {
			steps, err := tree.Insert(20, "x")
			So(err, ShouldEqual, wavl.ErrDuplicateKey)
			So(steps, ShouldEqual, 0)

			v, _ := tree.Get(20)
			So(v, ShouldEqual, "v20")
			So(tree.Len(), ShouldEqual, 5)
		})

		Convey("Min and Max are the extreme values", func() {
			lo, ok := tree.Min()
			So(ok, ShouldBeTrue)
			So(lo, ShouldEqual, "v5")
			hi, ok := tree.Max()
			So(ok, ShouldBeTrue)
			So(hi, ShouldEqual, "v30")
		})
	})

	Convey("Given an empty tree", t, func() {
		tree := wavl.New[int]()

		Convey("Delete reports a missing key", func() {
			_, err := tree.Delete(1)
			So(err, ShouldEqual, wavl.ErrKeyNotFound)
		})

		Convey("Min and Max are absent", func() {
			_, ok := tree.Min()
			So(ok, ShouldBeFalse)
			_, ok = tree.Max()
			So(ok, ShouldBeFalse)
		})

		Convey("Select is out of range", func() {
			_, err := tree.Select(1)
			So(err, ShouldEqual, wavl.ErrOutOfRange)
		})
	})

	Convey("Inserting then deleting 1 through 100 in order", t, func() {
		const n = 100
		tree := wavl.New[int]()
		for k := 1; k <= n; k++ {
			_, err := tree.Insert(k, k)
			So(err, ShouldBeNil)
			So(invariant.CheckInsertOnly(tree), ShouldBeNil)
		}
		So(tree.Len(), ShouldEqual, n)

		for k := 1; k <= n; k++ {
			_, err := tree.Delete(k)
			So(err, ShouldBeNil)
			So(invariant.Check(tree), ShouldBeNil)
			So(tree.Len(), ShouldEqual, n-k)
		}
		So(tree.Empty(), ShouldBeTrue)
	})
}
