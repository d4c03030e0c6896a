// Package w3c talks to the two public W3C validation services: the Nu HTML
// checker and the Jigsaw CSS validator. It only knows about requests and the
// JSON documents they return; turning messages into diagnostics is the
// driver's job.
package w3c
