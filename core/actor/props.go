package actor

// Producer creates fresh actor instances. It is used for the first spawn and
// must be safe to call again to respawn an equivalent instance.
type Producer[M any] interface {
	Create() Actor[M]
}

// Props is an immutable actor factory: a constructor plus the arguments it is
// always called with. Props is a value; copies share the constructor and
// carry their own copy of args.
type Props[Args any, M any] struct {
	creator func(Args) Actor[M]
	args    Args
}

// NewProps returns Props that build actors with creator(args).
func NewProps[Args any, M any](creator func(Args) Actor[M], args Args) Props[Args, M] {
	return Props[Args, M]{creator: creator, args: args}
}

// PropsFunc returns Props for a constructor without arguments.
func PropsFunc[M any](creator func() Actor[M]) Props[struct{}, M] {
	return NewProps(func(struct{}) Actor[M] { return creator() }, struct{}{})
}

// Create invokes the constructor with the stored arguments.
func (p Props[Args, M]) Create() Actor[M] {
	return p.creator(p.args)
}

// Args returns a copy of the construction arguments.
func (p Props[Args, M]) Args() Args { return p.args }

var _ Producer[int] = Props[int, int]{}
