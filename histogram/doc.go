/*
Package histogram provides a generic per-label observation counter,
the statistic from which label probability distributions are derived
when scoring the purity of a set of training examples.

It also provides, in the redisstore subpackage, a redis-backed
accumulator so that workers on different processes or machines can
contribute partial counts to a shared histogram.
*/
package histogram
