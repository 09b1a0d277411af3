package dispatch

// ResolveTargets decides which targets to dispatch. With no caller-supplied
// arguments the resolved list is exactly the single default target. Otherwise
// it is exactly the supplied arguments: same order, nothing added, removed or
// modified. Arguments are not inspected, so tool flags pass through to the
// checker untouched.
func ResolveTargets(args []string, defaultTarget string) []string {
	if len(args) == 0 {
		return []string{defaultTarget}
	}

	out := make([]string, len(args))
	copy(out, args)

	return out
}
