package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// nsRecordRegex matches an NS record line: the owner name, then either a TTL
// with an optional class or the class with an optional TTL, then the type.
var nsRecordRegex = regexp.MustCompile(`(?i)^([a-z0-9\-.]+)((\s+\d+)?(\s+IN)?|(\s+IN)(\s+\d+)?)\s+NS`)

// LoadZoneFile collects the delegated domain names of a zone file. Each
// matched owner name is written to echo as it is found; echo may be nil.
func LoadZoneFile(path, tld string, echo io.Writer) (*DomainSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &FileOpenError{Path: path, Err: err}
	}
	defer file.Close()

	domains, err := ExtractDomains(file, tld, echo)
	if err != nil {
		return nil, fmt.Errorf("error reading zone file %q: %w", path, err)
	}
	if domains.Len() == 0 {
		return nil, &EmptyDomainSetError{Path: path}
	}

	return domains, nil
}

// ExtractDomains scans r line by line and returns the owner names of all NS
// records with the ".<tld>." suffix removed. Lines that are not NS records
// are skipped.
func ExtractDomains(r io.Reader, tld string, echo io.Writer) (*DomainSet, error) {
	domains := NewDomainSet()
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if match := nsRecordRegex.FindStringSubmatch(line); match != nil {
				if echo != nil {
					if _, werr := fmt.Fprintln(echo, match[1]); werr != nil {
						return nil, werr
					}
				}
				domains.Add(StripTLD(match[1], tld))
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return domains, nil
}

// StripTLD removes a trailing ".<tld>." from name. Any other name, including
// one that only differs in case, is returned unchanged.
func StripTLD(name, tld string) string {
	return strings.TrimSuffix(name, "."+tld+".")
}
