// Package platform wires the rental platform API: its client kinds, the
// authenticated adapter factory that backs them and the typed clients the
// seeder publishes through.
package platform
