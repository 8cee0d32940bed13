package pool

// Resettable is a constraint for types that have a Reset() method.
type Resettable interface {
	Reset()
}

// Pool is a bounded free list of reusable objects. Idle objects are kept
// until the next Get.
type Pool[T Resettable] struct {
	items   chan T
	newItem func() T
}

// New creates a Pool holding at most capacity idle objects.
// newItem is called whenever Get finds the pool empty.
func New[T Resettable](capacity int, newItem func() T) *Pool[T] {
	return &Pool[T]{
		items:   make(chan T, capacity),
		newItem: newItem,
	}
}

// Get returns an idle object or a freshly created one.
func (p *Pool[T]) Get() T {
	select {
	case item := <-p.items:
		return item
	default:
		return p.newItem()
	}
}

// Put resets item and keeps it for reuse; it is dropped when the pool is full.
func (p *Pool[T]) Put(item T) {
	item.Reset()

	select {
	case p.items <- item:
	default:
	}
}

// Idle returns the number of objects waiting for reuse.
func (p *Pool[T]) Idle() int {
	return len(p.items)
}
