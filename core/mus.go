// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the snapshot format. The types are small
// and stable, so the serializers are maintained by hand instead of generated.

var (
	keywordsMUS = ord.NewSliceSer[string](ord.String)
	vectorMUS   = ord.NewSliceSer[float32](raw.Float32)
)

// IDMUS serializes article IDs.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// ArticleMUS serializes Articles. Field order is part of the snapshot format
// and must not change without a snapshot rebuild.
var ArticleMUS = articleMUS{}

type articleMUS struct{}

func (articleMUS) Marshal(a Article, bs []byte) (n int) {
	n = IDMUS.Marshal(a.Id, bs)
	n += ord.String.Marshal(a.Name, bs[n:])
	n += ord.String.Marshal(a.Text, bs[n:])
	n += ord.String.Marshal(a.Filename, bs[n:])
	n += ord.String.Marshal(a.Year, bs[n:])
	n += keywordsMUS.Marshal(a.Keywords, bs[n:])
	n += vectorMUS.Marshal(a.Vector, bs[n:])
	return n
}

func (articleMUS) Unmarshal(bs []byte) (a Article, n int, err error) {
	var n1 int
	a.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	a.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Year, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Keywords, n1, err = keywordsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (articleMUS) Size(a Article) (size int) {
	size = IDMUS.Size(a.Id)
	size += ord.String.Size(a.Name)
	size += ord.String.Size(a.Text)
	size += ord.String.Size(a.Filename)
	size += ord.String.Size(a.Year)
	size += keywordsMUS.Size(a.Keywords)
	size += vectorMUS.Size(a.Vector)
	return size
}

func (articleMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	for i := 0; i < 4; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = keywordsMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	return
}
