package photos

// UpdateListener is informed when the collection or its selection change.
type UpdateListener interface {
	// PhotoDataUpdated is called on structural or content changes.
	PhotoDataUpdated(c *Collection)
	// SelectedPhotoChanged is called when the selection changes.
	SelectedPhotoChanged(c *Collection)
}

// listenerList is a de-duplicating list of listeners, fired synchronously
// in registration order.
type listenerList struct {
	listeners []UpdateListener
}

func (ll *listenerList) add(l UpdateListener) {
	if ll.indexOf(l) != -1 {
		return
	}
	ll.listeners = append(ll.listeners, l)
}

func (ll *listenerList) remove(l UpdateListener) {
	i := ll.indexOf(l)
	if i == -1 {
		return
	}
	ll.listeners = append(ll.listeners[:i], ll.listeners[i+1:]...)
}

func (ll *listenerList) indexOf(l UpdateListener) int {
	for i, v := range ll.listeners {
		if v == l {
			return i
		}
	}
	return -1
}

func (ll *listenerList) fire(f func(UpdateListener)) {
	for _, l := range ll.listeners {
		f(l)
	}
}
