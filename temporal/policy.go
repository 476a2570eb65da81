package temporal

// StepEndpointPolicy resolves Open Question (i): the source's two call
// sites for step-interpolation AtValue disagreed on whether a value equal
// to the instant just before a right-exclusive sequence bound belongs to
// the sequence's domain for that value. Both behaviors are exposed
// explicitly instead of guessed.
type StepEndpointPolicy uint8

const (
	// EndpointPolicyRightExcluded treats the right-exclusive endpoint as
	// outside AtValue's domain unless the preceding instant already
	// carries the queried value — i.e. value membership follows strictly
	// from which instants are actually present, matching
	// MEOS's tstepseq_at_value. This is the default.
	EndpointPolicyRightExcluded StepEndpointPolicy = iota
	// EndpointPolicyLeftEqualsValue additionally admits the truncated
	// instant's value even when no preceding instant carries it, treating
	// the open upper bound as if it still holds the last recorded value
	// for membership purposes (the second, looser behavior observed in
	// the source).
	EndpointPolicyLeftEqualsValue
)

// DefaultStepEndpointPolicy is used by every restriction entry point that
// doesn't take an explicit policy argument.
const DefaultStepEndpointPolicy = EndpointPolicyRightExcluded
