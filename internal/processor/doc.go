// Package processor runs the newsletter-to-podcast pipeline: fetch the
// latest post, normalize it, write a script, narrate it and publish the
// episode. Stages run sequentially; any stage error aborts the run.
package processor
