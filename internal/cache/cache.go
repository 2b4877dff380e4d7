package cache

import (
	"container/list"
)

// Cache is a least-recently-used store of rendered text bounded by the total
// byte size of its keys and values.
type Cache struct {
	maxBytes  int64
	size      int64
	evictList *list.List
	items     map[string]*list.Element
}

type entry struct {
	key   string
	value string
}

func (e *entry) size() int64 {
	return int64(len(e.key) + len(e.value))
}

func New(maxBytes int64) *Cache {
	return &Cache{
		maxBytes:  maxBytes,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

func (c *Cache) Get(key string) (string, bool) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*entry).value, true
	}
	return "", false
}

// Put stores value under key. Values larger than the whole budget are not kept.
func (c *Cache) Put(key, value string) {
	e := &entry{key: key, value: value}
	if e.size() > c.maxBytes {
		c.Remove(key)
		return
	}

	if ele, hit := c.items[key]; hit {
		old := ele.Value.(*entry)
		c.size += e.size() - old.size()
		ele.Value = e
		c.evictList.MoveToFront(ele)
	} else {
		c.items[key] = c.evictList.PushFront(e)
		c.size += e.size()
	}

	for c.size > c.maxBytes {
		c.removeOldest()
	}
}

func (c *Cache) Remove(key string) {
	if ele, hit := c.items[key]; hit {
		c.removeElement(ele)
	}
}

func (c *Cache) Purge() {
	c.evictList.Init()
	c.items = make(map[string]*list.Element)
	c.size = 0
}

func (c *Cache) Len() int {
	return c.evictList.Len()
}

// SizeOf returns the bytes currently held.
func (c *Cache) SizeOf() int64 {
	return c.size
}

func (c *Cache) removeOldest() {
	ele := c.evictList.Back()
	if ele != nil {
		c.removeElement(ele)
	}
}

func (c *Cache) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry)
	delete(c.items, kv.key)
	c.size -= kv.size()
}
