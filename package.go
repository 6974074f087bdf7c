//
// web service that accepts a student's identity and per-subject
// marks, calculates percentages and letter grades for each subject
// and overall, and returns the marksheet either for display or
// exported as a pdf result card, a word document or a json file
// ready for download.
//
package otfmarksheet
