package trimmer

import "github.com/chrisuehlinger/cliptrim/event"

// binding records one registered listener so it can be released on teardown.
type binding struct {
	target EventTarget
	typ    event.Type
	id     event.ListenerID
}

func (s *Selector) listen(target EventTarget, typ event.Type, handler event.Handler) {
	id := target.AddEventListener(typ, handler)
	s.bindings = append(s.bindings, binding{target: target, typ: typ, id: id})
}

func (s *Selector) unbindAll() {
	for _, b := range s.bindings {
		b.target.RemoveEventListener(b.typ, b.id)
	}
	s.bindings = nil
}
