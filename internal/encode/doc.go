// Package encode maps source sample formats to intermediate and final output
// codecs. The intermediate codec keeps segment renders lossless in the source
// representation; the final codec depends on the output container, with FLAC
// coercing floating-point sources to a 32-bit integer representation.
package encode
