/*
 * mq
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package builtin

import (
	"container/list"
	"regexp"
	"sync"

	"github.com/krotik/mq/errs"
)

/*
regexCache is a capacity-bounded LRU cache of compiled patterns, shared by
match/gsub/split - one of the module's few pieces of global mutable state
(others are the symbol interner and builtin.Logger/Stdin).
*/
type regexCache struct {
	lock     sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
}

type regexCacheEntry struct {
	pattern string
	re      *regexp.Regexp
}

var sharedRegexCache = newRegexCache(256)

func newRegexCache(capacity int) *regexCache {
	return &regexCache{capacity: capacity, entries: make(map[string]*list.Element), order: list.New()}
}

/*
SetRegexCacheCapacity resizes the shared regex cache, used by the host to apply the
configured RegexCacheSize.
*/
func SetRegexCacheCapacity(n int) {
	sharedRegexCache.lock.Lock()
	defer sharedRegexCache.lock.Unlock()
	sharedRegexCache.capacity = n
	for sharedRegexCache.order.Len() > n {
		sharedRegexCache.evictOldest()
	}
}

func (c *regexCache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.entries, oldest.Value.(*regexCacheEntry).pattern)
}

func compileCached(pattern string) (*regexp.Regexp, error) {
	c := sharedRegexCache

	c.lock.Lock()
	if el, ok := c.entries[pattern]; ok {
		c.order.MoveToFront(el)
		re := el.Value.(*regexCacheEntry).re
		c.lock.Unlock()
		return re, nil
	}
	c.lock.Unlock()

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errs.ErrInvalidRegularExpr
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	el := c.order.PushFront(&regexCacheEntry{pattern: pattern, re: re})
	c.entries[pattern] = el
	for c.order.Len() > c.capacity {
		c.evictOldest()
	}

	return re, nil
}
