package jq_extensions

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	lhm "github.com/xboshy/linkedhashmap"
)

/*
 * compiled_test/1 is a drop in replacement for jq's test/1 that keeps
 * the compiled regular expressions in a bounded cache, so extractor
 * programs matching the same patterns on every record skip the
 * recompile.
 */

const max_cached_regexes = 10000

type lhm_map_functions struct {
}

func (mf *lhm_map_functions) ExpiredHandler(key *string, value **regexp.Regexp) {
}

func (mf *lhm_map_functions) CapacityRule(curcapacity uint64, curlen uint64, head **regexp.Regexp, tail **regexp.Regexp) uint64 {
	return curcapacity
}

type regex_cache struct {
	regex  *lhm.Map[string, *regexp.Regexp]
	rwlock sync.RWMutex
}

var lhm_mf lhm.MapFunctions[string, *regexp.Regexp] = &lhm_map_functions{}

var cache *regex_cache = &regex_cache{
	regex: lhm.New(max_cached_regexes, lhm_mf),
}

// jq uses Oniguruma named groups (?<name>...), Go wants (?P<name>...)
func compile_regexp(re string) (*regexp.Regexp, error) {
	re = strings.ReplaceAll(re, "(?<", "(?P<")
	r, err := regexp.Compile(re)
	if err != nil {
		return nil, fmt.Errorf("compile_regexp - invalid regular expression %q: %s", re, err)
	}
	return r, nil
}

func (rc *regex_cache) get(re string) (*regexp.Regexp, error) {
	rc.rwlock.RLock()
	cre := rc.regex.Get(re)
	rc.rwlock.RUnlock()

	if cre == nil {
		rc.rwlock.Lock()
		defer rc.rwlock.Unlock()

		cre = rc.regex.Get(re)
		if cre == nil {
			ncre, err := compile_regexp(re)
			if err != nil {
				return nil, err
			}
			rc.regex.Push(re, ncre)
			cre = &ncre
		}
	}

	return *cre, nil
}

/*
 * gojq.WithFunction callback -- in is the candidate string, args[0]
 * the pattern
 */
func Compiled_test(in any, args []any) any {
	s, ok := in.(string)
	if !ok {
		return fmt.Errorf("compiled_test - input is not a string %q", in)
	}
	restr, ok := args[0].(string)
	if !ok {
		return fmt.Errorf("compiled_test - regex is not a string %q", args[0])
	}

	r, err := cache.get(restr)
	if err != nil {
		return err
	}

	return r.FindStringSubmatchIndex(s) != nil
}
