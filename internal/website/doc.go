// Package website talks to adventofcode.com: it builds puzzle URLs and
// downloads puzzle inputs, caching them under the configured input directory.
// Requests authenticate with the user's session cookie and use a short fixed
// timeout with no retries.
package website
