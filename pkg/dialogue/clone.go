package dialogue

// Deep copies over the tree types. A session's working line list is a
// clone of the resolved fragment: selecting an option splices into and
// rewrites the clone, and must never reach the shared source document.

// CloneLines returns a deep copy of a line slice.
func CloneLines(lines []Line) []Line {
	if lines == nil {
		return nil
	}
	out := make([]Line, len(lines))
	for i := range lines {
		out[i] = lines[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the line, including nested options.
func (l Line) Clone() Line {
	out := l
	if l.HideSpeaker != nil {
		v := *l.HideSpeaker
		out.HideSpeaker = &v
	}
	if l.Options != nil {
		out.Options = make([]Option, len(l.Options))
		for i := range l.Options {
			out.Options[i] = l.Options[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the option, including nested branches.
func (o Option) Clone() Option {
	out := o
	out.Lines = CloneLines(o.Lines)
	out.Actions = CloneActions(o.Actions)
	if o.Branches != nil {
		out.Branches = make([]Fork, len(o.Branches))
		for i := range o.Branches {
			out.Branches[i] = o.Branches[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the fork.
func (f Fork) Clone() Fork {
	out := f
	if f.Checks != nil {
		out.Checks = make([]Check, len(f.Checks))
		copy(out.Checks, f.Checks)
	}
	out.Lines = CloneLines(f.Lines)
	out.Actions = CloneActions(f.Actions)
	return out
}

// CloneActions returns a deep copy of an action slice.
func CloneActions(actions []Action) []Action {
	if actions == nil {
		return nil
	}
	out := make([]Action, len(actions))
	for i := range actions {
		out[i] = actions[i]
		if actions[i].IfMissing != nil {
			v := *actions[i].IfMissing
			out[i].IfMissing = &v
		}
	}
	return out
}
