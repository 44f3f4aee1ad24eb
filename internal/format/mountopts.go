package format

const netdevOption = "_netdev"

// ApplyNetdevPolicy implements the spec's mount-option automation: the
// "_netdev" option is added automatically iff the device's ancestry is
// network-backed and the caller did not specify it explicitly, and
// removed automatically iff the ancestry is purely local and the
// caller did not specify it explicitly. userSpecified reflects whether
// "_netdev" appeared in the options the caller supplied for this
// format assignment, independent of any previous automation.
func ApplyNetdevPolicy(options []string, networkBacked bool, userSpecified bool) []string {
	has := containsOption(options, netdevOption)

	switch {
	case networkBacked && !userSpecified && !has:
		return append(append([]string(nil), options...), netdevOption)
	case !networkBacked && !userSpecified && has:
		return removeOption(options, netdevOption)
	default:
		return options
	}
}

func containsOption(options []string, opt string) bool {
	for _, o := range options {
		if o == opt {
			return true
		}
	}
	return false
}

func removeOption(options []string, opt string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if o != opt {
			out = append(out, o)
		}
	}
	return out
}
