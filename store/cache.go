/*
Copyright © 2026 the SDR authors.
This file is part of SDR.

SDR is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SDR is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SDR.  If not, see <http://www.gnu.org/licenses/>.
*/

package store

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// Cache keeps up to a fixed number of files open so that repeated
// reads from the same granule do not reopen it. Files handed out by
// Cache ignore Close; they are closed when they are evicted or when
// the Cache itself is closed.
type Cache struct {
	mu    sync.Mutex
	open  Opener
	files *lru.Cache
	err   error
}

// NewCache returns a Cache that opens files with open.
func NewCache(open Opener, maxEntries int) *Cache {
	c := &Cache{open: open, files: lru.New(maxEntries)}
	c.files.OnEvicted = func(_ lru.Key, v interface{}) {
		if err := v.(File).Close(); err != nil && c.err == nil {
			c.err = err
		}
	}
	return c
}

type cachedFile struct {
	File
}

func (cachedFile) Close() error { return nil }

// Open is an Opener.
func (c *Cache) Open(filename string) (File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.files.Get(filename); ok {
		return cachedFile{f.(File)}, nil
	}
	f, err := c.open(filename)
	if err != nil {
		return nil, err
	}
	c.files.Add(filename, f)
	return cachedFile{f}, nil
}

// Close closes all open files and returns the first error
// encountered when closing any file.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.files.Len() > 0 {
		c.files.RemoveOldest()
	}
	err := c.err
	c.err = nil
	return err
}
