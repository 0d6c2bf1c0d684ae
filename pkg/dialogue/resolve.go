package dialogue

// Resolution is the concrete line sequence and pending actions selected
// for one session. It references the source document; callers that intend
// to mutate must clone first.
type Resolution struct {
	Lines   []Line
	Actions []Action
}

// Resolve selects the active variant of a document. Forks are evaluated in
// document order against the view; the first fork whose checks all pass
// contributes its lines, falling back to the fork's actions, then the
// document's actions, if the fork declares none. If no fork matches, the
// document's base lines/actions are returned.
//
// Resolution is a pure function of (document, view): it performs no
// mutation and no I/O.
func Resolve(doc *Document, view ItemView) Resolution {
	if doc == nil {
		return Resolution{}
	}
	if r, ok := resolveForks(doc.Forks, view); ok {
		if len(r.Actions) == 0 {
			r.Actions = doc.Actions
		}
		return r
	}
	return Resolution{Lines: doc.Lines, Actions: doc.Actions}
}

// ResolveOption selects the active continuation of a chosen option,
// applying the same first-match-wins algorithm to its branches and falling
// back to the option's own lines/actions.
func ResolveOption(opt *Option, view ItemView) Resolution {
	if opt == nil {
		return Resolution{}
	}
	if r, ok := resolveForks(opt.Branches, view); ok {
		if len(r.Actions) == 0 {
			r.Actions = opt.Actions
		}
		return r
	}
	return Resolution{Lines: opt.Lines, Actions: opt.Actions}
}

func resolveForks(forks []Fork, view ItemView) (Resolution, bool) {
	for i := range forks {
		if evalAll(forks[i].Checks, view) {
			return Resolution{Lines: forks[i].Lines, Actions: forks[i].Actions}, true
		}
	}
	return Resolution{}, false
}
