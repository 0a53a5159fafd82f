// Package fx decodes particle effect parameters carried in string attributes.
//
// Effect parameters are ';'-separated fields whose first field names a mode:
//
//	constant;float;2.5
//	curve;float;4;1.0;0;0.5;1;0.5
//	gradient;color;2;0;{1,0,0,1};{0,0,1,0}
//	0.0;10;20;1;0.5
//
// [ParseCurve] handles scalar curves, [ParseGradient] color gradients and
// [ParseBursts] emission bursts. Malformed input yields an error with code
// INVALID_PARAMETER; none of the parsers panic on short or garbled strings.
package fx
