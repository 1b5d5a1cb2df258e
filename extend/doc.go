// Package extend implements the interesting-point extenders: four
// directional extenders (Right, Left, Up, Down) sharing one scanDirection
// core, plus two contact-placement extenders (LR, UD). An extender moves
// a partial path to the next coordinate where a routing decision could
// matter and records why it stopped there; the reasons decide which
// further extensions the successor path keeps enabled.
package extend
