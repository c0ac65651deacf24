package gesture

import "slices"

// lease tracks the locks one gesture holds. Each key is unlocked at most
// once no matter how many release paths run.
type lease struct {
	locker Locker
	held   []string
}

// acquire locks keys in order. If a Lock panics, the locks already taken
// are released before the panic continues.
func acquire(locker Locker, keys ...string) (l *lease) {
	l = &lease{locker: locker}
	defer func() {
		if r := recover(); r != nil {
			l.releaseAll()
			panic(r)
		}
	}()

	for _, key := range keys {
		locker.Lock(key)
		l.held = append(l.held, key)
	}
	return l
}

func (l *lease) release(key string) {
	i := slices.Index(l.held, key)
	if i < 0 {
		return
	}
	l.held = slices.Delete(l.held, i, i+1)
	l.locker.Unlock(key)
}

func (l *lease) releaseAll() {
	for len(l.held) > 0 {
		l.release(l.held[len(l.held)-1])
	}
}
